package ingest

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/albapepper/puckline-data/internal/config"
	"github.com/albapepper/puckline-data/internal/gateway"
	"github.com/albapepper/puckline-data/internal/ledger"
	"github.com/albapepper/puckline-data/internal/provider/nhl"
	"github.com/albapepper/puckline-data/internal/season"
)

// ErrAlreadyRunning is returned when a job is triggered while another job
// holds the in-progress latch (§5, §7).
var ErrAlreadyRunning = errors.New("ingestion job already running")

// Orchestrator composes the adapters, gateway, and ledger into the three
// top-level jobs of §4.D. Grounded on internal/seed/nba.go's SeedNBA
// phased orchestration and internal/fixture/scheduler.go's single-flight
// batch guard.
type Orchestrator struct {
	cfg *config.Config
	gw  *gateway.Gateway
	led *ledger.Ledger

	schedule *nhl.ScheduleAdapter
	roster   *nhl.RosterAdapter
	gameLog  *nhl.GameLogAdapter
	advanced *nhl.AdvancedStatsAdapter
	injuries *nhl.InjuryAdapter
	goalies  *nhl.GoalieStatsAdapter
	teamStat *nhl.TeamStatsAdapter

	running atomic.Bool
	mu      sync.Mutex
	last    *JobResult
}

// New constructs an Orchestrator. Each adapter gets its own rate-limited
// client so pacing is independent per external source (§5).
func New(cfg *config.Config, gw *gateway.Gateway, led *ledger.Ledger) *Orchestrator {
	httpTimeout := 30 * time.Second
	csvTimeout := 60 * time.Second

	return &Orchestrator{
		cfg:      cfg,
		gw:       gw,
		led:      led,
		schedule: nhl.NewScheduleAdapter(nhl.NewClient(httpTimeout, cfg.RosterFetchInterval)),
		roster:   nhl.NewRosterAdapter(nhl.NewClient(httpTimeout, cfg.RosterFetchInterval)),
		gameLog:  nhl.NewGameLogAdapter(nhl.NewClient(httpTimeout, cfg.GameLogFetchInterval)),
		advanced: nhl.NewAdvancedStatsAdapter(nhl.NewClient(csvTimeout, cfg.BulkSeasonInterval)),
		injuries: nhl.NewInjuryAdapter(nhl.NewClient(httpTimeout, cfg.GameLogFetchInterval)),
		goalies:  nhl.NewGoalieStatsAdapter(nhl.NewClient(httpTimeout, cfg.RosterFetchInterval)),
		teamStat: nhl.NewTeamStatsAdapter(nhl.NewClient(httpTimeout, cfg.RosterFetchInterval)),
	}
}

// currentSeasonStartYear returns the starting year of the season active on
// "now" using the October 1 boundary (§4.D.2, §9).
func currentSeasonStartYear(now time.Time) int {
	if now.Month() >= time.October {
		return now.Year()
	}
	return now.Year() - 1
}

// currentSeasonCode returns the internal 8-digit season code active on now.
func currentSeasonCode(now time.Time) string {
	return season.Encode(currentSeasonStartYear(now))
}

// tryAcquire attempts to take the job-in-progress latch. Returns false if
// another job already holds it (§5 shared-mutable-state rule, §7
// already_running failure mode).
func (o *Orchestrator) tryAcquire() bool {
	return o.running.CompareAndSwap(false, true)
}

func (o *Orchestrator) release(result *JobResult) {
	o.mu.Lock()
	o.last = result
	o.mu.Unlock()
	o.running.Store(false)
}

// LastResult returns the most recently completed job's result, if any.
func (o *Orchestrator) LastResult() (*JobResult, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last, o.last != nil
}

// runSubTask wraps a sub-task so its error is captured into the job
// summary under its name rather than aborting the job (§4.D rule 3).
func runSubTask(result *JobResult, name string, fn func() error) {
	if err := fn(); err != nil {
		result.Fail(name, errors.Wrapf(err, "sub-task %s", name))
		return
	}
	result.Ok(name)
}
