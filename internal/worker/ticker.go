// Package worker provides the ticker loop driving the refresh pipeline.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const logFieldWorker = "worker"

// Config configures a single-ticker worker loop.
type Config struct {
	// Name identifies the worker for logging.
	Name string

	// Interval is the tick interval.
	Interval time.Duration

	// RunOnStart runs the tick once before the first interval elapses.
	RunOnStart bool

	// OnTick is invoked on every tick.
	OnTick func(ctx context.Context)

	// Logger for the worker.
	Logger *zerolog.Logger
}

// Loop runs the ticker loop until the context is canceled. Returns a
// wrapped context error on cancellation.
func Loop(ctx context.Context, cfg Config) error {
	cfg.Logger.Info().Str(logFieldWorker, cfg.Name).Dur("interval", cfg.Interval).Msg("starting ticker loop")
	defer cfg.Logger.Info().Str(logFieldWorker, cfg.Name).Msg("ticker loop stopped")

	if cfg.RunOnStart && cfg.OnTick != nil {
		cfg.OnTick(ctx)
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("ticker loop %s: %w", cfg.Name, ctx.Err())
		case <-ticker.C:
			if cfg.OnTick != nil {
				cfg.OnTick(ctx)
			}
		}
	}
}
