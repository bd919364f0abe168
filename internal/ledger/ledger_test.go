package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReadMissingFileReturnsDefault(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "progress.json"))
	rec := l.Read()
	if rec.LastGameLogDate != nil {
		t.Fatalf("expected nil LastGameLogDate on missing file, got %v", rec.LastGameLogDate)
	}
	if rec.CompletedSeasons == nil || len(rec.CompletedSeasons) != 0 {
		t.Fatalf("expected empty CompletedSeasons slice, got %v", rec.CompletedSeasons)
	}
}

func TestReadMalformedFileReturnsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := New(path)
	rec := l.Read()
	if rec.LastGameLogDate != nil {
		t.Fatalf("expected defaulted record on malformed file")
	}
}

func TestDurabilityAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	d1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)

	for _, d := range []time.Time{d1, d2, d3} {
		l := New(path) // simulate process restart: fresh Ledger value each write
		if err := l.SetLastGameLogDate(d); err != nil {
			t.Fatalf("write %v: %v", d, err)
		}
		fresh := New(path)
		got := fresh.Read().LastGameLogDate
		if got == nil || !got.Equal(d) {
			t.Fatalf("after writing %v, read returned %v", d, got)
		}
	}
}

func TestAppendCompletedSeasonDedup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	l := New(path)
	now := time.Now()
	if err := l.AppendCompletedSeason("20222023", now); err != nil {
		t.Fatal(err)
	}
	if err := l.AppendCompletedSeason("20222023", now); err != nil {
		t.Fatal(err)
	}
	rec := l.Read()
	if len(rec.CompletedSeasons) != 1 {
		t.Fatalf("expected 1 completed season after dedup, got %v", rec.CompletedSeasons)
	}
}

func TestIsFresh(t *testing.T) {
	now := time.Now()
	recent := now.Add(-1 * time.Hour)
	stale := now.Add(-10 * time.Hour)
	if !IsFresh(&recent, 4*time.Hour, now) {
		t.Fatalf("expected recent marker fresh within 4h threshold")
	}
	if IsFresh(&stale, 4*time.Hour, now) {
		t.Fatalf("expected stale marker not fresh within 4h threshold")
	}
	if IsFresh(nil, 4*time.Hour, now) {
		t.Fatalf("expected nil marker never fresh")
	}
}
