package ingest

import (
	"context"
	"time"

	"github.com/albapepper/puckline-data/internal/config"
	"github.com/albapepper/puckline-data/internal/ledger"
	"github.com/albapepper/puckline-data/internal/provider/nhl"
)

// Startup runs the non-blocking startup job (§4.D.1): seed-if-empty
// advanced stats, today's schedule, game-log catch-up, injuries,
// team/goalie stats, roster sync, advanced-stats refresh, in that order.
// Each sub-task's failure is captured into the result rather than
// aborting the job.
func (o *Orchestrator) Startup(ctx context.Context, now time.Time) (*JobResult, error) {
	if !o.tryAcquire() {
		return nil, ErrAlreadyRunning
	}
	result := NewJobResult()
	defer o.release(result)

	rec := o.led.Read()
	seasonCode := currentSeasonCode(now)
	externalYear := currentSeasonStartYear(now)

	count, err := o.gw.CountSeasonStats(ctx)
	switch {
	case err != nil:
		result.Fail("seed_if_empty", err)
	case count >= config.SeedIfEmptyThreshold:
		result.Skip("seed_if_empty", "already_seeded")
	default:
		runSubTask(result, "seed_if_empty", func() error {
			return o.ingestAdvancedStats(ctx, externalYear, result)
		})
	}

	runSubTask(result, "todays_schedule", func() error {
		for _, g := range o.schedule.GetScheduleForDate(ctx, now.Format(dateLayout)) {
			if err := o.gw.UpsertGame(ctx, toGatewayGame(g)); err != nil {
				return err
			}
			result.GamesUpserted++
		}
		return nil
	})

	o.gameLogCatchup(ctx, now, result)

	if ledger.IsFresh(rec.LastInjuryUpdate, config.InjuryFreshness, now) {
		result.Skip("injuries", "recently_updated")
	} else {
		runSubTask(result, "injuries", func() error { return o.ingestInjuries(ctx, result, now) })
	}

	if ledger.IsFresh(rec.LastTeamStatsUpdate, config.TeamStatsFreshness, now) {
		result.Skip("team_goalie_stats", "recently_updated")
	} else {
		runSubTask(result, "team_goalie_stats", func() error {
			return o.ingestTeamAndGoalieStats(ctx, externalYear, seasonCode, result, now)
		})
	}

	if ledger.IsFresh(rec.LastRosterSync, config.RosterSyncFreshness, now) {
		result.Skip("roster_sync", "recently_updated")
	} else {
		runSubTask(result, "roster_sync", func() error { return o.ingestRosters(ctx, seasonCode, result, now) })
	}

	if ledger.IsFresh(rec.LastMoneypuckUpdate, config.AdvancedFreshness, now) {
		result.Skip("advanced_stats_refresh", "recently_updated")
	} else {
		runSubTask(result, "advanced_stats_refresh", func() error {
			return o.ingestAdvancedStats(ctx, externalYear, result)
		})
	}

	return result, nil
}

func (o *Orchestrator) ingestAdvancedStats(ctx context.Context, externalYear int, result *JobResult) error {
	for _, s := range o.advanced.GetSeasonStats(ctx, externalYear) {
		if err := o.gw.UpsertPlayerSeasonStats(ctx, toGatewaySeasonStats(s)); err != nil {
			return err
		}
		result.StatsUpserted++
	}
	return o.led.SetFreshness("last_moneypuck_update", time.Now())
}

func (o *Orchestrator) ingestInjuries(ctx context.Context, result *JobResult, now time.Time) error {
	if err := o.gw.DeactivateAllInjuries(ctx); err != nil {
		return err
	}
	for _, i := range o.injuries.GetInjuries(ctx) {
		if err := o.gw.UpsertInjury(ctx, toGatewayInjury(i)); err != nil {
			return err
		}
		result.InjuriesUpserted++
	}
	return o.led.SetFreshness("last_injury_update", now)
}

func (o *Orchestrator) ingestTeamAndGoalieStats(ctx context.Context, externalYear int, seasonCode string, result *JobResult, now time.Time) error {
	for _, t := range o.teamStat.GetTeamStats(ctx, externalYear) {
		if err := o.gw.UpsertTeamSeasonStats(ctx, toGatewayTeamSeasonStats(t)); err != nil {
			return err
		}
	}
	for _, g := range o.goalies.GetGoalieStats(ctx, externalYear) {
		if err := o.gw.UpsertGoalieStats(ctx, toGatewayGoalieStats(g)); err != nil {
			return err
		}
	}
	_ = seasonCode
	return o.led.SetFreshness("last_team_stats_update", now)
}

func (o *Orchestrator) ingestRosters(ctx context.Context, seasonCode string, result *JobResult, now time.Time) error {
	for _, team := range nhl.KnownTeamCodes {
		for _, p := range o.roster.GetRoster(ctx, team, seasonCode) {
			if err := o.gw.UpsertPlayer(ctx, toGatewayPlayer(p)); err != nil {
				return err
			}
			result.PlayersUpserted++
		}
	}
	return o.led.SetFreshness("last_roster_sync", now)
}
