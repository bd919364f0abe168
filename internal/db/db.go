// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/albapepper/puckline-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
	sqlx *sqlx.DB
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	sqlxDB := sqlx.NewDb(stdlib.OpenDBFromPool(pool), "pgx")

	return &Pool{Pool: pool, sqlx: sqlxDB}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// SQLX exposes a sqlx.DB sharing this pool's connections, used by the
// gateway's multi-column read helpers for struct-scanning (§4.B).
func (p *Pool) SQLX() *sqlx.DB {
	return p.sqlx
}

// registerPreparedStatements registers the named statements below on every
// new connection. Only some gateway reads use them; the other reads and all
// upserts run their SQL directly. Prepared statements eliminate parse
// overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		"health_check": "SELECT 1",

		// Gateway: bookkeeping
		"count_season_stats": "SELECT count(*) FROM " + config.PlayerSeasonStatsTable,
		"most_recent_season": "SELECT max(season) FROM " + config.PlayerSeasonStatsTable + " WHERE player_id = $1",
		"season_stat_row":    "SELECT * FROM " + config.PlayerSeasonStatsTable + " WHERE player_id = $1 ORDER BY season DESC LIMIT 1",
		"team_by_code":       "SELECT * FROM " + config.TeamsTable + " WHERE code = $1",

		// Gateway: read helpers used by the prediction engine (§4.B)
		"team_top_k_by_stat":   "SELECT ps.* FROM " + config.PlayerSeasonStatsTable + " ps JOIN " + config.PlayersTable + " p ON p.external_id = ps.player_id WHERE p.team_code = $1 AND ps.season = $2 ORDER BY ps.points DESC LIMIT $3",
		"league_leaders":       "SELECT ps.* FROM " + config.PlayerSeasonStatsTable + " ps JOIN " + config.PlayersTable + " p ON p.external_id = ps.player_id WHERE ($1 = '' OR ps.season = $1) ORDER BY ps.points DESC LIMIT $2",
		"goalie_starter":       "SELECT gs.* FROM " + config.GoalieStatsTable + " gs JOIN " + config.PlayersTable + " p ON p.external_id = gs.player_id WHERE p.team_code = $1 AND gs.season = $2 ORDER BY gs.games_started DESC LIMIT 1",
		"probable_goalie":      "SELECT * FROM " + config.ProbableGoaliesTable + " WHERE game_external_id = $1 AND team_code = $2",
		"game_logs_recent":     "SELECT * FROM " + config.GameLogsTable + " WHERE player_id = $1 AND game_date < $2 ORDER BY game_date DESC LIMIT $3",
		"game_logs_vs_opp":     "SELECT * FROM " + config.GameLogsTable + " WHERE player_id = $1 AND opponent_code = $2",
		"game_logs_all":        "SELECT * FROM " + config.GameLogsTable + " WHERE player_id = $1",
		"injuries_for_team":    "SELECT i.* FROM " + config.InjuriesTable + " i JOIN " + config.PlayersTable + " p ON p.external_id = i.player_id WHERE i.active = true AND p.team_code = $1",
		"games_for_date":       "SELECT * FROM " + config.GamesTable + " WHERE game_date = $1",
		"trade_candidate_pool": "SELECT ps.* FROM " + config.PlayerSeasonStatsTable + " ps JOIN " + config.PlayersTable + " p ON p.external_id = ps.player_id WHERE ps.season = $1 AND ps.games >= 20",

		// Vector search (§4.G) — cosine distance via pgvector's `<=>` operator.
		"document_similarity": "SELECT id, title, source, content, url, metadata, 1 - (embedding <=> $1) AS similarity FROM " + config.DocumentsTable + " ORDER BY embedding <=> $1 LIMIT $2",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
