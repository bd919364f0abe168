package ingest

import (
	"testing"
	"time"
)

func TestCurrentSeasonStartYear(t *testing.T) {
	cases := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC), 2025},
		{time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), 2026},
		{time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC), 2026},
		{time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), 2026},
	}
	for _, c := range cases {
		if got := currentSeasonStartYear(c.now); got != c.want {
			t.Fatalf("currentSeasonStartYear(%v) = %d, want %d", c.now, got, c.want)
		}
	}
}

func TestCurrentSeasonCode(t *testing.T) {
	now := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	if got := currentSeasonCode(now); got != "20262027" {
		t.Fatalf("currentSeasonCode = %q, want 20262027", got)
	}
}

func TestJobResultPartialFailureTolerance(t *testing.T) {
	result := NewJobResult()
	runSubTask(result, "a", func() error { return nil })
	runSubTask(result, "b", func() error { return errTest })
	runSubTask(result, "c", func() error { return nil })

	if result.SubTasks["a"] != "ok" || result.SubTasks["c"] != "ok" {
		t.Fatalf("expected a and c to succeed despite b failing: %v", result.SubTasks)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly one recorded error, got %v", result.Errors)
	}
}

func TestLatchPreventsOverlap(t *testing.T) {
	o := &Orchestrator{}
	if !o.tryAcquire() {
		t.Fatalf("expected first acquire to succeed")
	}
	if o.tryAcquire() {
		t.Fatalf("expected second acquire to fail while latch is held")
	}
	o.release(NewJobResult())
	if !o.tryAcquire() {
		t.Fatalf("expected acquire to succeed again after release")
	}
}

var errTest = &testError{"boom"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
