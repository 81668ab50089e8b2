// Package config holds the batch configuration: which archives to fetch,
// where to write GeoJSON, and how geometry is post-processed.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	Items    []Item         `yaml:"items"`
	Simplify SimplifyConfig `yaml:"simplify"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Log      LogConfig      `yaml:"log"`
}

// Item is one batch entry: a RAR archive URL and the GeoJSON output path.
type Item struct {
	URL    string `yaml:"url"`
	Output string `yaml:"output"`
}

// SimplifyConfig controls geometry simplification of line and polygon
// features. Points are never simplified.
type SimplifyConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Tolerance float64 `yaml:"tolerance"`
}

// FetchConfig holds HTTP download settings.
type FetchConfig struct {
	Timeout Duration `yaml:"timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Simplify: SimplifyConfig{
			Enabled:   true,
			Tolerance: 0.001, // degrees, post-reprojection
		},
		Fetch: FetchConfig{
			Timeout: Duration(300 * time.Second),
		},
		Log: LogConfig{
			Level: "INFO",
		},
	}
}

// Load loads the configuration from the given path, merging file values
// over defaults. The file must exist; use GenerateDefault to create one.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	for i, item := range cfg.Items {
		if item.URL == "" || item.Output == "" {
			return nil, fmt.Errorf("items[%d]: url and output are both required", i)
		}
	}

	return cfg, nil
}

// GenerateDefault writes the default configuration to path, creating parent
// directories as needed. Existing files are not overwritten.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
