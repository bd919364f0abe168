// Command puckline-ingest is the ingestion CLI driving schedule, roster,
// game-log, advanced-stats, and injury pipelines into the relational
// store.
//
// Usage:
//
//	puckline-ingest startup
//	puckline-ingest daily
//	puckline-ingest catchup
//	puckline-ingest bulk --from 2015 --to 2024 --skip-completed
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/puckline-data/internal/config"
	"github.com/albapepper/puckline-data/internal/db"
	"github.com/albapepper/puckline-data/internal/gateway"
	"github.com/albapepper/puckline-data/internal/ingest"
	"github.com/albapepper/puckline-data/internal/ledger"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "puckline-ingest",
		Short: "Hockey analytics data ingestion CLI",
	}

	root.AddCommand(startupCmd())
	root.AddCommand(dailyCmd())
	root.AddCommand(catchupCmd())
	root.AddCommand(bulkCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func startupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "startup",
		Short: "Run the startup ingestion job (§4.D.1)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(func(ctx context.Context, o *ingest.Orchestrator) (*ingest.JobResult, error) {
				return o.Startup(ctx, time.Now())
			})
		},
	}
}

func dailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Run the daily refresh job (§4.D.3)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(func(ctx context.Context, o *ingest.Orchestrator) (*ingest.JobResult, error) {
				return o.Daily(ctx, time.Now())
			})
		},
	}
}

func catchupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catchup",
		Short: "Run the game-log catch-up job (§4.D.2)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(func(ctx context.Context, o *ingest.Orchestrator) (*ingest.JobResult, error) {
				return o.GameLogCatchup(ctx, time.Now()), nil
			})
		},
	}
}

func bulkCmd() *cobra.Command {
	var from, to int
	var skipCompleted bool
	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Run the multi-season backfill job (§4.D.4)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == 0 || to == 0 || from > to {
				return fmt.Errorf("--from and --to are required, with --from <= --to")
			}
			return runJob(func(ctx context.Context, o *ingest.Orchestrator) (*ingest.JobResult, error) {
				return o.Bulk(ctx, from, to, skipCompleted)
			})
		},
	}
	cmd.Flags().IntVar(&from, "from", 0, "First season's starting year (e.g. 2015)")
	cmd.Flags().IntVar(&to, "to", 0, "Last season's starting year (e.g. 2024)")
	cmd.Flags().BoolVar(&skipCompleted, "skip-completed", true, "Skip seasons already recorded in the progress ledger")
	return cmd
}

// runJob handles config loading, DB connection, orchestrator wiring, and
// context cancellation around a single job invocation.
func runJob(fn func(ctx context.Context, o *ingest.Orchestrator) (*ingest.JobResult, error)) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	led := ledger.New(cfg.LedgerPath)
	gw := gateway.New(pool)
	orch := ingest.New(cfg, gw, led)

	start := time.Now()
	result, err := fn(ctx, orch)
	if err != nil {
		if err == ingest.ErrAlreadyRunning {
			logger.Warn("job skipped: already running")
			return nil
		}
		return err
	}

	logger.Info("job finished", "duration", time.Since(start).Round(time.Second), "summary", result.Summary())
	for _, e := range result.Errors {
		logger.Error("sub-task error", "error", e)
	}
	return nil
}
