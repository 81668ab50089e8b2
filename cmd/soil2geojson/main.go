package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"soil2geojson/pkg/batch"
	"soil2geojson/pkg/config"
	"soil2geojson/pkg/fetch"
	"soil2geojson/pkg/logging"
	"soil2geojson/pkg/pipeline"
)

const defaultConfigPath = "configs/soil2geojson.yaml"

var (
	configPath = flag.String("config", "", "Path to config file (falls back to $SOIL2GEOJSON_CONFIG, then "+defaultConfigPath+")")
	initConfig = flag.Bool("init-config", false, "Generate default config file and exit")
)

func main() {
	flag.Parse()

	// Optional .env for SOIL2GEOJSON_CONFIG.
	_ = godotenv.Load()

	path := *configPath
	if path == "" {
		path = os.Getenv("SOIL2GEOJSON_CONFIG")
	}
	if path == "" {
		path = defaultConfigPath
	}

	if *initConfig {
		if err := config.GenerateDefault(path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Config file generated:", path)
		return
	}

	if err := run(context.Background(), path); err != nil {
		fmt.Fprintf(os.Stderr, "soil2geojson failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogs, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("soil2geojson started", "config", configPath, "items", len(cfg.Items))

	client := fetch.New(time.Duration(cfg.Fetch.Timeout))
	converter := pipeline.New(client, cfg.Simplify)

	items := make([]batch.Item, len(cfg.Items))
	for i, it := range cfg.Items {
		items[i] = batch.Item{URL: it.URL, Output: it.Output}
	}

	outcomes := batch.Run(ctx, items, converter.Convert)

	success, failed := batch.Summary(outcomes)
	fmt.Printf("success: %d\n", success)
	fmt.Printf("failed: %d\n", failed)
	return nil
}
