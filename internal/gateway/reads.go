package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/albapepper/puckline-data/internal/config"
)

// seasonRow and gameLogRow mirror the scan targets the read helpers below
// populate via sqlx.Select — struct-scanning directly into the typed
// result, the way riskibarqy-fantasy-league layers sqlx over its pool for
// read-heavy query helpers (§4.B).
type seasonRow struct {
	PlayerID      int64   `db:"player_id"`
	Season        string  `db:"season"`
	Games         int     `db:"games"`
	Goals         int     `db:"goals"`
	Assists       int     `db:"assists"`
	Points        int     `db:"points"`
	Shots         int     `db:"shots"`
	TOIPerGame    float64 `db:"toi_per_game"`
	ExpectedGoals float64 `db:"expected_goals"`
	XGPer60       float64 `db:"xg_per_60"`
	CorsiForPct   float64 `db:"corsi_for_pct"`
	FenwickForPct float64 `db:"fenwick_for_pct"`
}

func (r seasonRow) toModel() PlayerSeasonStats {
	return PlayerSeasonStats{
		PlayerExternalID: r.PlayerID,
		Season:           r.Season,
		Games:            r.Games,
		Goals:            r.Goals,
		Assists:          r.Assists,
		Points:           r.Points,
		Shots:            r.Shots,
		TOIPerGame:       r.TOIPerGame,
		ExpectedGoals:    r.ExpectedGoals,
		XGPer60:          r.XGPer60,
		CorsiForPct:      r.CorsiForPct,
		FenwickForPct:    r.FenwickForPct,
	}
}

type gameLogRow struct {
	PlayerID         int64     `db:"player_id"`
	GameExternalID   int64     `db:"game_external_id"`
	GameDate         time.Time `db:"game_date"`
	Season           string    `db:"season"`
	TeamCode         string    `db:"team_code"`
	OpponentCode     string    `db:"opponent_code"`
	IsHome           bool      `db:"is_home"`
	Goals            int       `db:"goals"`
	Assists          int       `db:"assists"`
	Points           int       `db:"points"`
	Shots            int       `db:"shots"`
	TOI              float64   `db:"toi"`
	PlusMinus        int       `db:"plus_minus"`
	PenaltyMinutes   int       `db:"penalty_minutes"`
	PowerPlayGoals   int       `db:"powerplay_goals"`
	ShorthandedGoals int       `db:"shorthanded_goals"`
	GameWinningGoals int       `db:"game_winning_goals"`
	OvertimeGoals    int       `db:"overtime_goals"`
	Shifts           int       `db:"shifts"`
}

func (r gameLogRow) toModel() GameLog {
	return GameLog{
		PlayerExternalID: r.PlayerID,
		GameExternalID:   r.GameExternalID,
		Date:             r.GameDate,
		Season:           r.Season,
		TeamCode:         r.TeamCode,
		OpponentCode:     r.OpponentCode,
		IsHome:           r.IsHome,
		Goals:            r.Goals,
		Assists:          r.Assists,
		Points:           r.Points,
		Shots:            r.Shots,
		TOI:              r.TOI,
		PlusMinus:        r.PlusMinus,
		PenaltyMinutes:   r.PenaltyMinutes,
		PowerPlayGoals:   r.PowerPlayGoals,
		ShorthandedGoals: r.ShorthandedGoals,
		GameWinningGoals: r.GameWinningGoals,
		OvertimeGoals:    r.OvertimeGoals,
		Shifts:           r.Shifts,
	}
}

// MostRecentSeason returns the highest season code recorded for a player,
// or "" if none exists.
func (g *Gateway) MostRecentSeason(ctx context.Context, playerExtID int64) (string, error) {
	var season *string
	err := g.pool.QueryRow(ctx, "most_recent_season", playerExtID).Scan(&season)
	if err != nil {
		return "", fmt.Errorf("most recent season for %d: %w", playerExtID, err)
	}
	if season == nil {
		return "", nil
	}
	return *season, nil
}

// SeasonStatRow returns a player's most recent season stat row.
func (g *Gateway) SeasonStatRow(ctx context.Context, playerExtID int64) (PlayerSeasonStats, bool, error) {
	var rows []seasonRow
	err := g.pool.SQLX().SelectContext(ctx, &rows,
		`SELECT player_id, season, games, goals, assists, points, shots,
		        toi_per_game, expected_goals, xg_per_60, corsi_for_pct, fenwick_for_pct
		   FROM `+config.PlayerSeasonStatsTable+`
		  WHERE player_id = $1 ORDER BY season DESC LIMIT 1`, playerExtID)
	if err != nil {
		return PlayerSeasonStats{}, false, fmt.Errorf("season stat row for %d: %w", playerExtID, err)
	}
	if len(rows) == 0 {
		return PlayerSeasonStats{}, false, nil
	}
	return rows[0].toModel(), true, nil
}

// RecentGameLogs returns up to limit game logs for a player strictly
// before date, ordered most recent first (used by the recent-form feature,
// §4.E.2).
func (g *Gateway) RecentGameLogs(ctx context.Context, playerExtID int64, before time.Time, limit int) ([]GameLog, error) {
	var rows []gameLogRow
	err := g.pool.SQLX().SelectContext(ctx, &rows,
		`SELECT player_id, game_external_id, game_date, season, team_code, opponent_code,
		        is_home, goals, assists, points, shots, toi, plus_minus, penalty_minutes,
		        powerplay_goals, shorthanded_goals, game_winning_goals, overtime_goals, shifts
		   FROM `+config.GameLogsTable+`
		  WHERE player_id = $1 AND game_date < $2
		  ORDER BY game_date DESC LIMIT $3`, playerExtID, before, limit)
	if err != nil {
		return nil, fmt.Errorf("recent game logs for %d: %w", playerExtID, err)
	}
	out := make([]GameLog, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

// GameLogsVsOpponent returns every career game log for a player against a
// given opponent (no date filter; §4.E.2 H2H feature).
func (g *Gateway) GameLogsVsOpponent(ctx context.Context, playerExtID int64, opponentCode string) ([]GameLog, error) {
	var rows []gameLogRow
	err := g.pool.SQLX().SelectContext(ctx, &rows,
		`SELECT player_id, game_external_id, game_date, season, team_code, opponent_code,
		        is_home, goals, assists, points, shots, toi, plus_minus, penalty_minutes,
		        powerplay_goals, shorthanded_goals, game_winning_goals, overtime_goals, shifts
		   FROM `+config.GameLogsTable+`
		  WHERE player_id = $1 AND opponent_code = $2`, playerExtID, opponentCode)
	if err != nil {
		return nil, fmt.Errorf("game logs vs %s for %d: %w", opponentCode, playerExtID, err)
	}
	out := make([]GameLog, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

// AllGameLogs returns every career game log for a player (§4.E.2
// home/away splits feature).
func (g *Gateway) AllGameLogs(ctx context.Context, playerExtID int64) ([]GameLog, error) {
	var rows []gameLogRow
	err := g.pool.SQLX().SelectContext(ctx, &rows,
		`SELECT player_id, game_external_id, game_date, season, team_code, opponent_code,
		        is_home, goals, assists, points, shots, toi, plus_minus, penalty_minutes,
		        powerplay_goals, shorthanded_goals, game_winning_goals, overtime_goals, shifts
		   FROM `+config.GameLogsTable+`
		  WHERE player_id = $1`, playerExtID)
	if err != nil {
		return nil, fmt.Errorf("all game logs for %d: %w", playerExtID, err)
	}
	out := make([]GameLog, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

// TeamRoster returns the top-K players on a team for a season, ranked by
// points (used to seed MatchupPrediction candidate lists, §4.E.6).
func (g *Gateway) TeamRoster(ctx context.Context, teamCode, season string, k int) ([]PlayerSeasonStats, error) {
	var rows []seasonRow
	err := g.pool.SQLX().SelectContext(ctx, &rows,
		`SELECT ps.player_id, ps.season, ps.games, ps.goals, ps.assists, ps.points, ps.shots,
		        ps.toi_per_game, ps.expected_goals, ps.xg_per_60, ps.corsi_for_pct, ps.fenwick_for_pct
		   FROM `+config.PlayerSeasonStatsTable+` ps
		   JOIN `+config.PlayersTable+` p ON p.external_id = ps.player_id
		  WHERE p.team_code = $1 AND ps.season = $2
		  ORDER BY ps.points DESC LIMIT $3`, teamCode, season, k)
	if err != nil {
		return nil, fmt.Errorf("team roster %s/%s: %w", teamCode, season, err)
	}
	out := make([]PlayerSeasonStats, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

// leaderStatColumns allowlists the columns LeagueLeaders may sort by, so
// a caller-supplied stat name never reaches the query as raw SQL text.
var leaderStatColumns = map[string]string{
	"points":        "points",
	"goals":         "goals",
	"assists":       "assists",
	"xg":            "expected_goals",
	"corsi_for_pct": "corsi_for_pct",
}

// LeagueLeaders returns the league-wide top-K players ordered by stat
// (one of leaderStatColumns' keys; "" or an unrecognized value falls back
// to points), optionally filtered by season (§4.B, §4.F step 5).
func (g *Gateway) LeagueLeaders(ctx context.Context, season, stat string, k int) ([]PlayerSeasonStats, error) {
	column, ok := leaderStatColumns[stat]
	if !ok {
		column = "points"
	}
	var rows []seasonRow
	err := g.pool.SQLX().SelectContext(ctx, &rows,
		`SELECT player_id, season, games, goals, assists, points, shots,
		        toi_per_game, expected_goals, xg_per_60, corsi_for_pct, fenwick_for_pct
		   FROM `+config.PlayerSeasonStatsTable+`
		  WHERE ($1 = '' OR season = $1)
		  ORDER BY `+column+` DESC LIMIT $2`, season, k)
	if err != nil {
		return nil, fmt.Errorf("league leaders season=%q stat=%q: %w", season, stat, err)
	}
	out := make([]PlayerSeasonStats, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

// GoalieStarter returns the starter for a team in a season, chosen by
// games-started descending (§4.B goalie-starter read helper).
func (g *Gateway) GoalieStarter(ctx context.Context, teamCode, season string) (GoalieStats, bool, error) {
	rows, err := g.pool.Query(ctx, "goalie_starter", teamCode, season)
	if err != nil {
		return GoalieStats{}, false, fmt.Errorf("goalie starter %s/%s: %w", teamCode, season, err)
	}
	defer rows.Close()
	if !rows.Next() {
		return GoalieStats{}, false, nil
	}
	var s GoalieStats
	if err := rows.Scan(
		&s.PlayerExternalID, &s.Season, &s.GamesStarted, &s.Wins, &s.Losses, &s.OTLosses,
		&s.Shutouts, &s.ShotsAgainst, &s.Saves, &s.SavePct, &s.GAA, &s.TOI,
	); err != nil {
		return GoalieStats{}, false, fmt.Errorf("scan goalie starter %s/%s: %w", teamCode, season, err)
	}
	return s, true, nil
}

// ProbableGoalieFor returns the confirmed/probable starting goalie for a
// team in an upcoming game, when known (§2.3 supplement).
func (g *Gateway) ProbableGoalieFor(ctx context.Context, gameExtID int64, teamCode string) (ProbableGoalie, bool, error) {
	var pg ProbableGoalie
	err := g.pool.QueryRow(ctx, "probable_goalie", gameExtID, teamCode).Scan(
		&pg.GameExternalID, &pg.TeamCode, &pg.PlayerExternalID, &pg.Confirmed, &pg.Source,
	)
	if err != nil {
		return ProbableGoalie{}, false, nil
	}
	return pg, true, nil
}

// GamesForDate returns every game scheduled on a given date (§4.F.1
// tonight/timeframe dispatch).
func (g *Gateway) GamesForDate(ctx context.Context, date time.Time) ([]Game, error) {
	rows, err := g.pool.Query(ctx, "games_for_date", date)
	if err != nil {
		return nil, fmt.Errorf("games for date %s: %w", date.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var out []Game
	for rows.Next() {
		var gm Game
		if err := rows.Scan(
			&gm.ExternalID, &gm.Season, &gm.Date, &gm.StartUTC, &gm.Venue,
			&gm.HomeTeam, &gm.AwayTeam, &gm.HomeScore, &gm.AwayScore, &gm.State, &gm.IsCompleted,
		); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		out = append(out, gm)
	}
	return out, rows.Err()
}

// InjuriesForTeam returns every active injury for a team's roster.
func (g *Gateway) InjuriesForTeam(ctx context.Context, teamCode string) ([]Injury, error) {
	rows, err := g.pool.Query(ctx, "injuries_for_team", teamCode)
	if err != nil {
		return nil, fmt.Errorf("injuries for team %s: %w", teamCode, err)
	}
	defer rows.Close()

	var out []Injury
	for rows.Next() {
		var inj Injury
		if err := rows.Scan(&inj.PlayerExternalID, &inj.Active, &inj.Status, &inj.Description, &inj.ReportedDate); err != nil {
			return nil, fmt.Errorf("scan injury: %w", err)
		}
		out = append(out, inj)
	}
	return out, rows.Err()
}

// TradeCandidatePool returns season stat rows for every player with at
// least 20 games in a season, the candidate pool for §4.F.2 trade-value
// retrieval.
func (g *Gateway) TradeCandidatePool(ctx context.Context, season string) ([]PlayerSeasonStats, error) {
	var rows []seasonRow
	err := g.pool.SQLX().SelectContext(ctx, &rows,
		`SELECT player_id, season, games, goals, assists, points, shots,
		        toi_per_game, expected_goals, xg_per_60, corsi_for_pct, fenwick_for_pct
		   FROM `+config.PlayerSeasonStatsTable+`
		  WHERE season = $1 AND games >= 20`, season)
	if err != nil {
		return nil, fmt.Errorf("trade candidate pool %s: %w", season, err)
	}
	out := make([]PlayerSeasonStats, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

// PlayerNameByID resolves a player's external id to their display name,
// used when rendering predictions by id (§4.E/§4.F).
func (g *Gateway) PlayerNameByID(ctx context.Context, externalID int64) (string, error) {
	var names []string
	err := g.pool.SQLX().SelectContext(ctx, &names,
		`SELECT name FROM `+config.PlayersTable+` WHERE external_id = $1 LIMIT 1`, externalID)
	if err != nil {
		return "", fmt.Errorf("player name by id %d: %w", externalID, err)
	}
	if len(names) == 0 {
		return "", nil
	}
	return names[0], nil
}

// TeamSeasonStatsRow returns a team's season stat row, when present.
func (g *Gateway) TeamSeasonStatsRow(ctx context.Context, teamCode, season string) (TeamSeasonStats, bool, error) {
	var rows []struct {
		TeamCode         string  `db:"team_code"`
		Season           string  `db:"season"`
		Wins             int     `db:"wins"`
		Losses           int     `db:"losses"`
		OTLosses         int     `db:"ot_losses"`
		GoalsForPerGame  float64 `db:"goals_for_per_game"`
		GoalsAgstPerGame float64 `db:"goals_against_per_game"`
		ShotsForPerGame  float64 `db:"shots_for_per_game"`
		ShotsAgstPerGame float64 `db:"shots_against_per_game"`
		PowerPlayPct     float64 `db:"powerplay_pct"`
		PenaltyKillPct   float64 `db:"penalty_kill_pct"`
	}
	err := g.pool.SQLX().SelectContext(ctx, &rows,
		`SELECT team_code, season, wins, losses, ot_losses, goals_for_per_game, goals_against_per_game,
		        shots_for_per_game, shots_against_per_game, powerplay_pct, penalty_kill_pct
		   FROM `+config.TeamSeasonStatsTable+`
		  WHERE team_code = $1 AND season = $2 LIMIT 1`, teamCode, season)
	if err != nil {
		return TeamSeasonStats{}, false, fmt.Errorf("team season stats %s/%s: %w", teamCode, season, err)
	}
	if len(rows) == 0 {
		return TeamSeasonStats{}, false, nil
	}
	r := rows[0]
	return TeamSeasonStats{
		TeamCode: r.TeamCode, Season: r.Season, Wins: r.Wins, Losses: r.Losses, OTLosses: r.OTLosses,
		GoalsForPerGame: r.GoalsForPerGame, GoalsAgstPerGame: r.GoalsAgstPerGame,
		ShotsForPerGame: r.ShotsForPerGame, ShotsAgstPerGame: r.ShotsAgstPerGame,
		PowerPlayPct: r.PowerPlayPct, PenaltyKillPct: r.PenaltyKillPct,
	}, true, nil
}

// PlayerValueRow joins a player's name onto their season stat row, the
// shape the query router's trade-value scoring needs (§4.F.2).
type PlayerValueRow struct {
	PlayerExternalID int64
	Name             string
	PlayerSeasonStats
}

// PlayerByName resolves a player by case-insensitive exact name match.
func (g *Gateway) PlayerByName(ctx context.Context, name string) (Player, bool, error) {
	var rows []struct {
		ExternalID int64  `db:"external_id"`
		Name       string `db:"name"`
		Position   string `db:"position"`
		TeamCode   string `db:"team_code"`
	}
	err := g.pool.SQLX().SelectContext(ctx, &rows,
		`SELECT external_id, name, position, team_code FROM `+config.PlayersTable+`
		  WHERE lower(name) = lower($1) LIMIT 1`, name)
	if err != nil {
		return Player{}, false, fmt.Errorf("player by name %q: %w", name, err)
	}
	if len(rows) == 0 {
		return Player{}, false, nil
	}
	r := rows[0]
	return Player{ExternalID: r.ExternalID, Name: r.Name, Position: r.Position, TeamCode: r.TeamCode}, true, nil
}

// TradeCandidatePoolWithNames is TradeCandidatePool joined with player
// names, so the trade-value dispatch can exclude the input players by
// name without a second round trip (§4.F.2).
func (g *Gateway) TradeCandidatePoolWithNames(ctx context.Context, season string) ([]PlayerValueRow, error) {
	var rows []struct {
		PlayerID      int64   `db:"player_id"`
		Name          string  `db:"name"`
		Season        string  `db:"season"`
		Games         int     `db:"games"`
		Goals         int     `db:"goals"`
		Assists       int     `db:"assists"`
		Points        int     `db:"points"`
		Shots         int     `db:"shots"`
		TOIPerGame    float64 `db:"toi_per_game"`
		ExpectedGoals float64 `db:"expected_goals"`
		XGPer60       float64 `db:"xg_per_60"`
		CorsiForPct   float64 `db:"corsi_for_pct"`
		FenwickForPct float64 `db:"fenwick_for_pct"`
	}
	err := g.pool.SQLX().SelectContext(ctx, &rows,
		`SELECT ps.player_id, p.name, ps.season, ps.games, ps.goals, ps.assists, ps.points, ps.shots,
		        ps.toi_per_game, ps.expected_goals, ps.xg_per_60, ps.corsi_for_pct, ps.fenwick_for_pct
		   FROM `+config.PlayerSeasonStatsTable+` ps
		   JOIN `+config.PlayersTable+` p ON p.external_id = ps.player_id
		  WHERE ps.season = $1 AND ps.games >= 20`, season)
	if err != nil {
		return nil, fmt.Errorf("trade candidate pool with names %s: %w", season, err)
	}
	out := make([]PlayerValueRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, PlayerValueRow{
			PlayerExternalID: r.PlayerID,
			Name:             r.Name,
			PlayerSeasonStats: PlayerSeasonStats{
				PlayerExternalID: r.PlayerID,
				Season:           r.Season,
				Games:            r.Games,
				Goals:            r.Goals,
				Assists:          r.Assists,
				Points:           r.Points,
				Shots:            r.Shots,
				TOIPerGame:       r.TOIPerGame,
				ExpectedGoals:    r.ExpectedGoals,
				XGPer60:          r.XGPer60,
				CorsiForPct:      r.CorsiForPct,
				FenwickForPct:    r.FenwickForPct,
			},
		})
	}
	return out, nil
}

// CountSeasonStats returns the total row count in the season-stats table,
// used by the startup job's seed-if-empty check (§4.D.1).
func (g *Gateway) CountSeasonStats(ctx context.Context) (int, error) {
	var n int
	if err := g.pool.QueryRow(ctx, "count_season_stats").Scan(&n); err != nil {
		return 0, fmt.Errorf("count season stats: %w", err)
	}
	return n, nil
}

// ActivePlayers returns every player with a season-stat row for the given
// season — the "active skaters" set re-ingested by catch-up (§4.D.2).
func (g *Gateway) ActivePlayers(ctx context.Context, season string) ([]int64, error) {
	var ids []int64
	err := g.pool.SQLX().SelectContext(ctx, &ids,
		`SELECT DISTINCT player_id FROM `+config.PlayerSeasonStatsTable+` WHERE season = $1`, season)
	if err != nil {
		return nil, fmt.Errorf("active players season=%s: %w", season, err)
	}
	return ids, nil
}

// DocumentHit is a single vector-search result (§4.G).
type DocumentHit struct {
	ID         int64
	Title      string
	Source     string
	Content    string
	URL        string
	Metadata   map[string]interface{}
	Similarity float64
}

// SearchDocuments returns the top-K documents by cosine similarity to the
// query embedding, filtering out hits below minSimilarity (§4.G, property
// 10). Issued as a prepared raw-SQL query using pgvector's `<=>` operator.
func (g *Gateway) SearchDocuments(ctx context.Context, embedding []float32, k int, minSimilarity float64) ([]DocumentHit, error) {
	rows, err := g.pool.Query(ctx, "document_similarity", pgvectorLiteral(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentHit
	for rows.Next() {
		var h DocumentHit
		var metaRaw []byte
		if err := rows.Scan(&h.ID, &h.Title, &h.Source, &h.Content, &h.URL, &metaRaw, &h.Similarity); err != nil {
			return nil, fmt.Errorf("scan document hit: %w", err)
		}
		if h.Similarity < minSimilarity {
			continue
		}
		if len(metaRaw) > 0 {
			_ = json.Unmarshal(metaRaw, &h.Metadata)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
