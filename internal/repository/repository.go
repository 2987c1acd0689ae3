package repository

import "context"

// BenchmarkRunRepository persists and queries completed benchmark runs.
type BenchmarkRunRepository interface {
	// SaveRun records a completed make_bfs_tree invocation.
	SaveRun(ctx context.Context, run *BenchmarkRun) error

	// GetRunByUUID retrieves a run by its UUID.
	GetRunByUUID(ctx context.Context, runUUID string) (*BenchmarkRun, error)

	// ListRunsByJob retrieves every run recorded against a job.
	ListRunsByJob(ctx context.Context, jobUUID string) ([]*BenchmarkRun, error)

	// RecentRuns retrieves the most recent runs, newest first.
	RecentRuns(ctx context.Context, limit int) ([]*BenchmarkRun, error)
}

// BenchmarkJobRepository manages the queue of pending benchmark jobs that
// internal/scheduler polls.
type BenchmarkJobRepository interface {
	// EnqueueJob inserts a new pending job.
	EnqueueJob(ctx context.Context, job *BenchmarkJob) error

	// ClaimNextPending locks and returns the oldest pending job, transitioning
	// it to running. Returns nil, nil if no job is pending.
	ClaimNextPending(ctx context.Context) (*BenchmarkJob, error)

	// CompleteJob marks a job completed.
	CompleteJob(ctx context.Context, jobUUID string) error

	// FailJob marks a job failed with the given error info.
	FailJob(ctx context.Context, jobUUID string, errInfo string) error

	// GetJobByUUID retrieves a job by its UUID.
	GetJobByUUID(ctx context.Context, jobUUID string) (*BenchmarkJob, error)
}
