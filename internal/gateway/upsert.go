package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/albapepper/puckline-data/internal/config"
)

// UpsertTeam writes a canonical team row. Teams are rarely mutated once
// created, so every mutable column uses a bare EXCLUDED assignment
// (grounded on go/internal/seed/upsert.go's UpsertTeam).
func (g *Gateway) UpsertTeam(ctx context.Context, t Team) error {
	_, err := g.pool.Exec(ctx, `
		INSERT INTO `+config.TeamsTable+` (code, name, conference, division)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			conference = EXCLUDED.conference,
			division = EXCLUDED.division,
			updated_at = NOW()`,
		t.Code, t.Name, t.Conference, t.Division,
	)
	if err != nil {
		return fmt.Errorf("upsert team %s: %w", t.Code, err)
	}
	return nil
}

// UpsertPlayer writes a canonical player row. Biographical columns must
// never regress a known value to unknown when a later source omits them,
// so each uses COALESCE(EXCLUDED.col, players.col) rather than a bare
// EXCLUDED assignment (grounded on go/internal/seed/upsert.go's
// UpsertPlayer, generalized to hockey's column set).
func (g *Gateway) UpsertPlayer(ctx context.Context, p Player) error {
	_, err := g.pool.Exec(ctx, `
		INSERT INTO `+config.PlayersTable+` (
			external_id, name, position, team_code, birth_date,
			handedness, height_inches, weight_pounds, cap_hit_cents
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (external_id) DO UPDATE SET
			name = COALESCE(EXCLUDED.name, `+config.PlayersTable+`.name),
			position = COALESCE(EXCLUDED.position, `+config.PlayersTable+`.position),
			team_code = COALESCE(EXCLUDED.team_code, `+config.PlayersTable+`.team_code),
			birth_date = COALESCE(EXCLUDED.birth_date, `+config.PlayersTable+`.birth_date),
			handedness = COALESCE(EXCLUDED.handedness, `+config.PlayersTable+`.handedness),
			height_inches = COALESCE(EXCLUDED.height_inches, `+config.PlayersTable+`.height_inches),
			weight_pounds = COALESCE(EXCLUDED.weight_pounds, `+config.PlayersTable+`.weight_pounds),
			cap_hit_cents = COALESCE(EXCLUDED.cap_hit_cents, `+config.PlayersTable+`.cap_hit_cents),
			updated_at = NOW()`,
		p.ExternalID, nilEmpty(p.Name), nilEmpty(p.Position), nilEmpty(p.TeamCode),
		nilEmpty(p.BirthDate), nilEmpty(p.Handedness), nilZero(p.HeightInches),
		nilZero(p.WeightPounds), p.CapHitCents,
	)
	if err != nil {
		return fmt.Errorf("upsert player %d: %w", p.ExternalID, err)
	}
	return nil
}

// UpsertPlayerSeasonStats writes a player's season stat row (§3 Season
// stat row). Fully mutable: a new ingest run always reflects the latest
// observed totals.
func (g *Gateway) UpsertPlayerSeasonStats(ctx context.Context, s PlayerSeasonStats) error {
	_, err := g.pool.Exec(ctx, `
		INSERT INTO `+config.PlayerSeasonStatsTable+` (
			player_id, season, games, goals, assists, points, shots,
			toi_per_game, expected_goals, xg_per_60, corsi_for_pct, fenwick_for_pct
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (player_id, season) DO UPDATE SET
			games = EXCLUDED.games,
			goals = EXCLUDED.goals,
			assists = EXCLUDED.assists,
			points = EXCLUDED.points,
			shots = EXCLUDED.shots,
			toi_per_game = EXCLUDED.toi_per_game,
			expected_goals = EXCLUDED.expected_goals,
			xg_per_60 = EXCLUDED.xg_per_60,
			corsi_for_pct = EXCLUDED.corsi_for_pct,
			fenwick_for_pct = EXCLUDED.fenwick_for_pct,
			updated_at = NOW()`,
		s.PlayerExternalID, s.Season, s.Games, s.Goals, s.Assists, s.Points,
		s.Shots, s.TOIPerGame, s.ExpectedGoals, s.XGPer60, s.CorsiForPct, s.FenwickForPct,
	)
	if err != nil {
		return fmt.Errorf("upsert player season stats %d/%s: %w", s.PlayerExternalID, s.Season, err)
	}
	return nil
}

// UpsertGameLog writes a single player-game row. Unique by (player, game);
// idempotent re-ingest of a season's log never produces duplicates.
func (g *Gateway) UpsertGameLog(ctx context.Context, l GameLog) error {
	_, err := g.pool.Exec(ctx, `
		INSERT INTO `+config.GameLogsTable+` (
			player_id, game_external_id, game_date, season, team_code,
			opponent_code, is_home, goals, assists, points, shots, toi,
			plus_minus, penalty_minutes, powerplay_goals, shorthanded_goals,
			game_winning_goals, overtime_goals, shifts
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (player_id, game_external_id) DO UPDATE SET
			team_code = EXCLUDED.team_code,
			opponent_code = EXCLUDED.opponent_code,
			is_home = EXCLUDED.is_home,
			goals = EXCLUDED.goals,
			assists = EXCLUDED.assists,
			points = EXCLUDED.points,
			shots = EXCLUDED.shots,
			toi = EXCLUDED.toi,
			plus_minus = EXCLUDED.plus_minus,
			penalty_minutes = EXCLUDED.penalty_minutes,
			powerplay_goals = EXCLUDED.powerplay_goals,
			shorthanded_goals = EXCLUDED.shorthanded_goals,
			game_winning_goals = EXCLUDED.game_winning_goals,
			overtime_goals = EXCLUDED.overtime_goals,
			shifts = EXCLUDED.shifts,
			updated_at = NOW()`,
		l.PlayerExternalID, l.GameExternalID, l.Date, l.Season, l.TeamCode,
		l.OpponentCode, l.IsHome, l.Goals, l.Assists, l.Points, l.Shots, l.TOI,
		l.PlusMinus, l.PenaltyMinutes, l.PowerPlayGoals, l.ShorthandedGoals,
		l.GameWinningGoals, l.OvertimeGoals, l.Shifts,
	)
	if err != nil {
		return fmt.Errorf("upsert game log player=%d game=%d: %w", l.PlayerExternalID, l.GameExternalID, err)
	}
	return nil
}

// UpsertGoalieStats writes a goalie's season stat row.
func (g *Gateway) UpsertGoalieStats(ctx context.Context, s GoalieStats) error {
	_, err := g.pool.Exec(ctx, `
		INSERT INTO `+config.GoalieStatsTable+` (
			player_id, season, games_started, wins, losses, ot_losses,
			shutouts, shots_against, saves, save_pct, gaa, toi
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (player_id, season) DO UPDATE SET
			games_started = EXCLUDED.games_started,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			ot_losses = EXCLUDED.ot_losses,
			shutouts = EXCLUDED.shutouts,
			shots_against = EXCLUDED.shots_against,
			saves = EXCLUDED.saves,
			save_pct = EXCLUDED.save_pct,
			gaa = EXCLUDED.gaa,
			toi = EXCLUDED.toi,
			updated_at = NOW()`,
		s.PlayerExternalID, s.Season, s.GamesStarted, s.Wins, s.Losses, s.OTLosses,
		s.Shutouts, s.ShotsAgainst, s.Saves, s.SavePct, s.GAA, s.TOI,
	)
	if err != nil {
		return fmt.Errorf("upsert goalie stats %d/%s: %w", s.PlayerExternalID, s.Season, err)
	}
	return nil
}

// UpsertTeamSeasonStats writes a team's season stat row.
func (g *Gateway) UpsertTeamSeasonStats(ctx context.Context, s TeamSeasonStats) error {
	_, err := g.pool.Exec(ctx, `
		INSERT INTO `+config.TeamSeasonStatsTable+` (
			team_code, season, wins, losses, ot_losses,
			goals_for_per_game, goals_against_per_game,
			shots_for_per_game, shots_against_per_game,
			powerplay_pct, penalty_kill_pct
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (team_code, season) DO UPDATE SET
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			ot_losses = EXCLUDED.ot_losses,
			goals_for_per_game = EXCLUDED.goals_for_per_game,
			goals_against_per_game = EXCLUDED.goals_against_per_game,
			shots_for_per_game = EXCLUDED.shots_for_per_game,
			shots_against_per_game = EXCLUDED.shots_against_per_game,
			powerplay_pct = EXCLUDED.powerplay_pct,
			penalty_kill_pct = EXCLUDED.penalty_kill_pct,
			updated_at = NOW()`,
		s.TeamCode, s.Season, s.Wins, s.Losses, s.OTLosses,
		s.GoalsForPerGame, s.GoalsAgstPerGame, s.ShotsForPerGame, s.ShotsAgstPerGame,
		s.PowerPlayPct, s.PenaltyKillPct,
	)
	if err != nil {
		return fmt.Errorf("upsert team season stats %s/%s: %w", s.TeamCode, s.Season, err)
	}
	return nil
}

// UpsertInjury writes an injury row. Callers are expected to run
// DeactivateAllInjuries before re-asserting truths from the source, per
// §3's "current view" invariant.
func (g *Gateway) UpsertInjury(ctx context.Context, i Injury) error {
	_, err := g.pool.Exec(ctx, `
		INSERT INTO `+config.InjuriesTable+` (
			player_id, active, status, description, reported_date
		) VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (player_id) WHERE active DO UPDATE SET
			status = EXCLUDED.status,
			description = EXCLUDED.description,
			reported_date = EXCLUDED.reported_date,
			updated_at = NOW()`,
		i.PlayerExternalID, i.Active, i.Status, i.Description, i.ReportedDate,
	)
	if err != nil {
		return fmt.Errorf("upsert injury for player %d: %w", i.PlayerExternalID, err)
	}
	return nil
}

// DeactivateAllInjuries sets every injury row's active flag false. Called
// at the start of an injury-ingest pass so the subsequent UpsertInjury
// calls re-assert only currently-true injuries, yielding atomic
// "current view" semantics (§3 Injury).
func (g *Gateway) DeactivateAllInjuries(ctx context.Context) error {
	_, err := g.pool.Exec(ctx, `UPDATE `+config.InjuriesTable+` SET active = false, updated_at = NOW() WHERE active = true`)
	if err != nil {
		return fmt.Errorf("deactivate injuries: %w", err)
	}
	return nil
}

// UpsertGame writes a game row. Scores use COALESCE-merge: a future
// refresh that returns null scores (e.g. a not-yet-final game re-fetched)
// never clears scores already recorded for a completed game.
func (g *Gateway) UpsertGame(ctx context.Context, gm Game) error {
	_, err := g.pool.Exec(ctx, `
		INSERT INTO `+config.GamesTable+` (
			external_id, season, game_date, start_utc, venue,
			home_team, away_team, home_score, away_score, state, is_completed
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (external_id) DO UPDATE SET
			venue = EXCLUDED.venue,
			home_score = COALESCE(EXCLUDED.home_score, `+config.GamesTable+`.home_score),
			away_score = COALESCE(EXCLUDED.away_score, `+config.GamesTable+`.away_score),
			state = EXCLUDED.state,
			is_completed = EXCLUDED.is_completed,
			updated_at = NOW()`,
		gm.ExternalID, gm.Season, gm.Date, gm.StartUTC, gm.Venue,
		gm.HomeTeam, gm.AwayTeam, gm.HomeScore, gm.AwayScore, gm.State, gm.IsCompleted,
	)
	if err != nil {
		return fmt.Errorf("upsert game %d: %w", gm.ExternalID, err)
	}
	return nil
}

// UpsertProbableGoalie writes the §2.3 supplemented probable-goalie record.
func (g *Gateway) UpsertProbableGoalie(ctx context.Context, p ProbableGoalie) error {
	_, err := g.pool.Exec(ctx, `
		INSERT INTO `+config.ProbableGoaliesTable+` (
			game_external_id, team_code, player_id, confirmed, source
		) VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (game_external_id, team_code) DO UPDATE SET
			player_id = EXCLUDED.player_id,
			confirmed = EXCLUDED.confirmed,
			source = EXCLUDED.source,
			updated_at = NOW()`,
		p.GameExternalID, p.TeamCode, p.PlayerExternalID, p.Confirmed, p.Source,
	)
	if err != nil {
		return fmt.Errorf("upsert probable goalie game=%d team=%s: %w", p.GameExternalID, p.TeamCode, err)
	}
	return nil
}

// UpsertDocument writes a RAG document row with its embedding.
func (g *Gateway) UpsertDocument(ctx context.Context, d Document) error {
	meta, _ := json.Marshal(nonNilMap(d.Metadata))
	_, err := g.pool.Exec(ctx, `
		INSERT INTO `+config.DocumentsTable+` (title, source, content, url, embedding, metadata)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		d.Title, d.Source, d.Content, d.URL, pgvectorLiteral(d.Embedding), meta,
	)
	if err != nil {
		return fmt.Errorf("upsert document %q: %w", d.Title, err)
	}
	return nil
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// nilEmpty returns nil for empty strings so they map to SQL NULL rather
// than regressing a known value via COALESCE (grounded on
// go/internal/seed/upsert.go's nilEmpty).
func nilEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// nilZero returns nil for zero ints, for the same reason as nilEmpty.
func nilZero(n int) interface{} {
	if n == 0 {
		return nil
	}
	return n
}

// nonNilMap ensures a nil map becomes an empty map for JSON marshaling
// (grounded on go/internal/seed/upsert.go's nonNilMap).
func nonNilMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

// pgvectorLiteral renders a float32 slice in pgvector's text input format,
// e.g. "[0.1,0.2,0.3]". No pgvector-go client exists in the pack, so the
// embedding is passed as plain SQL text the way every other query here is.
func pgvectorLiteral(v []float32) string {
	s := "["
	for i, f := range v {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%g", f)
	}
	return s + "]"
}
