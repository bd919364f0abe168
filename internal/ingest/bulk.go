package ingest

import (
	"context"
	"time"

	"github.com/albapepper/puckline-data/internal/provider/nhl"
	"github.com/albapepper/puckline-data/internal/season"
)

// Bulk runs the multi-season backfill (§4.D.4). Seasons not already in
// completed_seasons are processed sequentially, with an inter-season sleep
// bounding the rate against the advanced-stats source. Each season: ensure
// teams loaded, download the advanced-stats CSV, project, upsert players
// (by external id), then stats. On success the season is appended to
// completed_seasons and last_update is persisted.
func (o *Orchestrator) Bulk(ctx context.Context, startYear, endYear int, skipCompleted bool) (*JobResult, error) {
	if !o.tryAcquire() {
		return nil, ErrAlreadyRunning
	}
	result := NewJobResult()
	defer o.release(result)

	rec := o.led.Read()
	completed := map[string]bool{}
	for _, c := range rec.CompletedSeasons {
		completed[c] = true
	}

	for y := startYear; y <= endYear; y++ {
		code := season.Encode(y)
		if skipCompleted && completed[code] {
			result.Skip(code, "already_completed")
			continue
		}

		runSubTask(result, code, func() error { return o.bulkSeason(ctx, y, code, result) })
		if _, found := result.SubTasks[code]; found && result.SubTasks[code] == "ok" {
			if err := o.led.AppendCompletedSeason(code, time.Now()); err != nil {
				result.Fail(code+"_ledger", err)
			}
		}

		if y < endYear {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(o.cfg.BulkSeasonInterval):
			}
		}
	}

	return result, nil
}

func (o *Orchestrator) bulkSeason(ctx context.Context, externalYear int, seasonCode string, result *JobResult) error {
	for _, team := range nhl.KnownTeamCodes {
		if err := o.gw.UpsertTeam(ctx, toBulkTeam(team)); err != nil {
			return err
		}
	}

	stats := o.advanced.GetSeasonStats(ctx, externalYear)
	for _, s := range stats {
		if err := o.gw.UpsertPlayer(ctx, toGatewayPlayer(nhl.RosterPlayer{ExternalID: s.PlayerExternalID})); err != nil {
			return err
		}
		if err := o.gw.UpsertPlayerSeasonStats(ctx, toGatewaySeasonStats(s)); err != nil {
			return err
		}
		result.StatsUpserted++
	}
	return nil
}
