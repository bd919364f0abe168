// Package ingest implements the ingestion orchestrator (§4.D): the
// startup, daily, and bulk multi-season jobs, composed from the external
// source adapters, the store gateway, and the progress ledger, with
// throttling-by-freshness, serial sub-tasks, and partial-failure
// tolerance.
package ingest

import "fmt"

// JobResult tracks per-sub-task counts and errors across an ingestion job.
// Sub-task failures are recorded here rather than aborting the job, per
// the partial-failure tolerance rule in §4.D.
type JobResult struct {
	SubTasks        map[string]string // sub-task name -> outcome ("ok", "skipped: reason", "error: ...")
	GamesUpserted   int
	PlayersUpserted int
	StatsUpserted   int
	LogsUpserted    int
	InjuriesUpserted int
	Errors          []string
}

// NewJobResult returns a JobResult ready to accumulate sub-task outcomes.
func NewJobResult() *JobResult {
	return &JobResult{SubTasks: map[string]string{}}
}

// Skip records that a sub-task was skipped, with a reason (e.g.
// "recently_updated" from the throttle-by-freshness rule).
func (r *JobResult) Skip(subTask, reason string) {
	r.SubTasks[subTask] = "skipped: " + reason
}

// Ok records that a sub-task completed successfully.
func (r *JobResult) Ok(subTask string) {
	r.SubTasks[subTask] = "ok"
}

// Fail records a sub-task error without aborting the job (§4.D rule 3:
// partial-failure tolerance).
func (r *JobResult) Fail(subTask string, err error) {
	r.SubTasks[subTask] = "error: " + err.Error()
	r.Errors = append(r.Errors, fmt.Sprintf("%s: %v", subTask, err))
}

// Failf is Fail with a formatted message instead of an error value.
func (r *JobResult) Failf(subTask, format string, args ...interface{}) {
	r.Fail(subTask, fmt.Errorf(format, args...))
}

// Summary returns a human-readable one-line summary of the job.
func (r *JobResult) Summary() string {
	return fmt.Sprintf(
		"sub_tasks=%d games=%d players=%d stats=%d logs=%d injuries=%d errors=%d",
		len(r.SubTasks), r.GamesUpserted, r.PlayersUpserted,
		r.StatsUpserted, r.LogsUpserted, r.InjuriesUpserted, len(r.Errors),
	)
}
