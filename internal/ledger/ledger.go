// Package ledger implements the progress ledger: a durable, file-backed
// key->timestamp/date store recording per-task last-success markers for the
// ingestion orchestrator (§4.C).
//
// Follows the original Python ingestion module's getter/setter pair idiom,
// expressed with explicit Go error returns and an in-process lock guarding
// a read-modify-write-then-replace cycle.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// Record is the full set of recognized progress-ledger keys (§3).
type Record struct {
	CompletedSeasons        []string `json:"completed_seasons"`
	LastUpdate               *time.Time `json:"last_update"`
	CurrentSeasonLastUpdate  *time.Time `json:"current_season_last_update"`
	LastGameLogDate          *time.Time `json:"last_game_log_date"`
	LastInjuryUpdate         *time.Time `json:"last_injury_update"`
	LastTeamStatsUpdate      *time.Time `json:"last_team_stats_update"`
	LastRosterSync           *time.Time `json:"last_roster_sync"`
	LastMoneypuckUpdate      *time.Time `json:"last_moneypuck_update"`
}

func defaultRecord() Record {
	return Record{CompletedSeasons: []string{}}
}

// Ledger is a durable, in-process-synchronized key-value store backed by a
// single JSON file.
type Ledger struct {
	mu   sync.Mutex
	path string
}

// New returns a ledger backed by the file at path. The file and its parent
// directories are created lazily on first write.
func New(path string) *Ledger {
	return &Ledger{path: path}
}

// Read loads the current record. A missing or malformed file yields the
// defaulted record rather than an error — reads are defensive by design.
func (l *Ledger) Read() Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readLocked()
}

func (l *Ledger) readLocked() Record {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return defaultRecord()
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return defaultRecord()
	}
	if rec.CompletedSeasons == nil {
		rec.CompletedSeasons = []string{}
	}
	return rec
}

// Mutate performs a read-modify-write cycle under the ledger's lock,
// applying fn to the current record and persisting the result atomically.
func (l *Ledger) Mutate(fn func(*Record)) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec := l.readLocked()
	fn(&rec)
	return l.writeLocked(rec)
}

// SetLastGameLogDate persists the last_game_log_date marker.
func (l *Ledger) SetLastGameLogDate(d time.Time) error {
	return l.Mutate(func(r *Record) { r.LastGameLogDate = &d })
}

// SetLastUpdate persists the last_update marker to t.
func (l *Ledger) SetLastUpdate(t time.Time) error {
	return l.Mutate(func(r *Record) { r.LastUpdate = &t })
}

// SetFreshness persists one of the freshness markers by key name.
func (l *Ledger) SetFreshness(key string, t time.Time) error {
	return l.Mutate(func(r *Record) {
		switch key {
		case "last_injury_update":
			r.LastInjuryUpdate = &t
		case "last_team_stats_update":
			r.LastTeamStatsUpdate = &t
		case "last_roster_sync":
			r.LastRosterSync = &t
		case "last_moneypuck_update":
			r.LastMoneypuckUpdate = &t
		}
	})
}

// AppendCompletedSeason appends a season code to completed_seasons if absent
// and persists last_update in the same write.
func (l *Ledger) AppendCompletedSeason(code string, now time.Time) error {
	return l.Mutate(func(r *Record) {
		for _, c := range r.CompletedSeasons {
			if c == code {
				r.LastUpdate = &now
				return
			}
		}
		r.CompletedSeasons = append(r.CompletedSeasons, code)
		r.LastUpdate = &now
	})
}

// IsFresh reports whether marker is within threshold of now; a nil marker
// is never fresh.
func IsFresh(marker *time.Time, threshold time.Duration, now time.Time) bool {
	if marker == nil {
		return false
	}
	return now.Sub(*marker) < threshold
}

// writeLocked performs an atomic full-file rewrite: write to a temp file in
// the same directory, then rename over the target. The rename is atomic on
// POSIX filesystems, giving durability property 5 (§8) — a reader never
// observes a partially-written file.
func (l *Ledger) writeLocked(rec Record) error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger record: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp ledger file: %w", err)
	}
	if err := os.Rename(tmpPath, l.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace ledger file: %w", err)
	}
	return nil
}
