// Package batch runs the configured conversion items strictly in order and
// collects per-item outcomes.
package batch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Status is the terminal state of one batch item.
type Status string

// Item states. An item transitions exactly once, from pending to one of
// these.
const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Item is one unit of work: download the archive at URL, write GeoJSON to
// Output.
type Item struct {
	URL    string
	Output string
}

// Outcome records how one item finished. Message is empty on success.
type Outcome struct {
	Item    Item
	Status  Status
	Message string
}

// ConvertFunc converts one archive URL into a GeoJSON file.
type ConvertFunc func(ctx context.Context, url, outputPath string) error

// Run processes items one at a time, in order. A failed item is recorded
// and the batch moves on; Run is the outermost error boundary and never
// panics outward. Items are processed sequentially on purpose: each one is
// a large download plus CPU-bound conversion, and log output must follow
// item order.
func Run(ctx context.Context, items []Item, convert ConvertFunc) []Outcome {
	runID := uuid.NewString()
	slog.Info("Batch started", "run_id", runID, "items", len(items))

	outcomes := make([]Outcome, 0, len(items))
	for _, item := range items {
		outcome := Outcome{Item: item, Status: StatusSuccess}

		if err := runOne(ctx, item, convert); err != nil {
			outcome.Status = StatusFailed
			outcome.Message = err.Error()
			slog.Error("Item failed", "url", item.URL, "error", err)
		} else {
			slog.Info("Item succeeded", "url", item.URL, "output", item.Output)
		}

		outcomes = append(outcomes, outcome)
	}

	success, failed := Summary(outcomes)
	slog.Info("Batch finished", "run_id", runID, "success", success, "failed", failed)
	return outcomes
}

func runOne(ctx context.Context, item Item, convert ConvertFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during conversion: %v", r)
		}
	}()
	return convert(ctx, item.URL, item.Output)
}

// Summary counts successes and failures.
func Summary(outcomes []Outcome) (success, failed int) {
	for _, o := range outcomes {
		if o.Status == StatusSuccess {
			success++
		} else {
			failed++
		}
	}
	return success, failed
}
