package ingest

import (
	"context"
	"log/slog"
	"time"
)

// SchedulerConfig controls the periodic triggers for the daily and
// catch-up background jobs.
type SchedulerConfig struct {
	DailyInterval   time.Duration
	CatchupInterval time.Duration
}

// DefaultSchedulerConfig returns the default daily/catch-up tick periods.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		DailyInterval:   24 * time.Hour,
		CatchupInterval: 6 * time.Hour,
	}
}

// StartScheduler launches background tickers for the daily and catch-up
// jobs. It does not block; each job's runLoop runs in its own goroutine,
// and that job's ticks run one after another inside it.
func StartScheduler(ctx context.Context, o *Orchestrator, cfg SchedulerConfig, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	dailyTicker := time.NewTicker(cfg.DailyInterval)
	catchupTicker := time.NewTicker(cfg.CatchupInterval)

	go runLoop(ctx, dailyTicker.C, "daily", logger, func() error {
		_, err := o.Daily(ctx, time.Now())
		return err
	})
	go runLoop(ctx, catchupTicker.C, "catchup", logger, func() error {
		_ = o.GameLogCatchup(ctx, time.Now())
		return nil
	})

	go func() {
		<-ctx.Done()
		dailyTicker.Stop()
		catchupTicker.Stop()
	}()
}

// runLoop runs fn on every tick until ctx is cancelled, logging errors
// without stopping the loop.
func runLoop(ctx context.Context, ticks <-chan time.Time, name string, logger *slog.Logger, fn func() error) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			if err := fn(); err != nil {
				if err == ErrAlreadyRunning {
					logger.Info("scheduled job skipped", "job", name, "reason", "already_running")
					continue
				}
				logger.Error("scheduled job failed", "job", name, "error", err)
			}
		}
	}
}
