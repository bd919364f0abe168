package ingest

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Daily runs the more aggressive daily job (§4.D.3): refresh schedule over
// [today, today+7], then unconditionally re-ingest logs, injuries,
// team/goalie stats, rosters, and advanced stats. The five unconditional
// refreshes run concurrently behind an errgroup capped at the same worker
// count as the catch-up job's conc/pool, per §2.2.
func (o *Orchestrator) Daily(ctx context.Context, now time.Time) (*JobResult, error) {
	if !o.tryAcquire() {
		return nil, ErrAlreadyRunning
	}
	result := NewJobResult()
	defer o.release(result)

	seasonCode := currentSeasonCode(now)
	externalYear := currentSeasonStartYear(now)

	runSubTask(result, "schedule_refresh_week", func() error {
		for d := now; !d.After(now.AddDate(0, 0, 7)); d = d.AddDate(0, 0, 1) {
			for _, g := range o.schedule.GetScheduleForDate(ctx, d.Format(dateLayout)) {
				if err := o.gw.UpsertGame(ctx, toGatewayGame(g)); err != nil {
					return err
				}
				result.GamesUpserted++
			}
		}
		return nil
	})

	grp, gctx := errgroup.WithContext(ctx)
	workerCap := o.cfg.CatchupWorkerCount
	if workerCap <= 0 {
		workerCap = 1
	}
	grp.SetLimit(workerCap)

	grp.Go(func() error {
		activeIDs, err := o.gw.ActivePlayers(gctx, seasonCode)
		if err != nil {
			return err
		}
		logs := 0
		for _, id := range activeIDs {
			for _, e := range o.gameLog.GetPlayerGameLog(gctx, id, seasonCode) {
				date, err := time.Parse(dateLayout, e.Date)
				if err != nil {
					continue
				}
				if o.gw.UpsertGameLog(gctx, toGatewayGameLog(e, date)) == nil {
					logs++
				}
			}
		}
		result.LogsUpserted += logs
		return nil
	})
	grp.Go(func() error { return o.ingestInjuries(gctx, result, now) })
	grp.Go(func() error { return o.ingestTeamAndGoalieStats(gctx, externalYear, seasonCode, result, now) })
	grp.Go(func() error { return o.ingestRosters(gctx, seasonCode, result, now) })
	grp.Go(func() error { return o.ingestAdvancedStats(gctx, externalYear, result) })

	if err := grp.Wait(); err != nil {
		result.Fail("daily_refresh", err)
		return result, nil
	}
	result.Ok("daily_refresh")
	return result, nil
}
