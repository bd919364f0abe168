package ingest

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/albapepper/puckline-data/internal/config"
)

const dateLayout = "2006-01-02"

// GameLogCatchup runs the bounded gap-fill described in §4.D.2. It is the
// orchestrator's game-log sub-task, invoked by both the startup job and
// directly via the "catchup" CLI subcommand.
func (o *Orchestrator) GameLogCatchup(ctx context.Context, now time.Time) *JobResult {
	result := NewJobResult()
	o.gameLogCatchup(ctx, now, result)
	return result
}

func (o *Orchestrator) gameLogCatchup(ctx context.Context, now time.Time, result *JobResult) {
	today := now.Truncate(24 * time.Hour)
	rec := o.led.Read()

	var start time.Time
	if rec.LastGameLogDate == nil {
		seasonStart := time.Date(currentSeasonStartYear(now), time.October, 1, 0, 0, 0, 0, time.UTC)
		bound := today.AddDate(0, 0, -config.MaxCatchupDays)
		if bound.After(seasonStart) {
			start = bound
		} else {
			start = seasonStart
		}
	} else {
		start = rec.LastGameLogDate.AddDate(0, 0, 1)
	}

	if !start.Before(today) {
		result.Ok("game_log_catchup")
		return
	}

	// Refresh the schedule over [start, today-1], advancing the fetch
	// cursor 7 days per call since the source returns a week at a time.
	lastDay := today.AddDate(0, 0, -1)
	runSubTask(result, "schedule_refresh", func() error {
		for cursor := start; !cursor.After(lastDay); cursor = cursor.AddDate(0, 0, 7) {
			for _, g := range o.schedule.GetScheduleForDate(ctx, cursor.Format(dateLayout)) {
				if err := o.gw.UpsertGame(ctx, toGatewayGame(g)); err != nil {
					return err
				}
			}
		}
		return nil
	})

	// Re-ingest every active player's season game log, bounded fan-out via
	// conc/pool (§2.2, §4.D.2 concurrency refinement) instead of unbounded
	// goroutines. Each worker still honours the adapter's own rate limiter
	// before every fetch, so the pool bounds in-flight requests while the
	// limiter bounds the rate.
	seasonCode := currentSeasonCode(now)
	activeIDs, err := o.gw.ActivePlayers(ctx, seasonCode)
	if err != nil {
		result.Fail("active_players", err)
		return
	}

	workerCap := o.cfg.CatchupWorkerCount
	if workerCap <= 0 {
		workerCap = 1
	}
	var logs atomic.Int64
	p := pool.New().WithMaxGoroutines(workerCap)
	for _, playerID := range activeIDs {
		playerID := playerID
		p.Go(func() {
			for _, e := range o.gameLog.GetPlayerGameLog(ctx, playerID, seasonCode) {
				date, err := time.Parse(dateLayout, e.Date)
				if err != nil {
					continue
				}
				if o.gw.UpsertGameLog(ctx, toGatewayGameLog(e, date)) == nil {
					logs.Add(1)
				}
			}
		})
	}
	p.Wait()
	result.LogsUpserted += int(logs.Load())
	result.Ok("game_log_reingest")

	if err := o.led.SetLastGameLogDate(lastDay); err != nil {
		result.Fail("ledger_write", err)
		return
	}
	result.Ok("ledger_write")
}

