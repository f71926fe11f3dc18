package workers

import (
	"context"

	"finecho-server/internal/calls/processor"
)

// JobRunner runs one pipeline job. Implementations handle their own failures;
// a returned error is only logged.
type JobRunner interface {
	RunJob(ctx context.Context, job processor.Job) error
}

// WorkerPool defines the interface for managing a pool of pipeline workers.
type WorkerPool interface {
	// Start launches the workers. Jobs run with a context derived from ctx.
	Start(ctx context.Context) error

	// Dispatch queues a job without blocking. Returns ErrQueueFull when the
	// buffer is full and ErrPoolClosed once draining has begun.
	Dispatch(ctx context.Context, job processor.Job) error

	// Drain stops accepting new jobs and waits for queued and in-flight jobs
	// to complete, up to the configured drain timeout.
	Drain(ctx context.Context) error

	// Stop immediately cancels all workers.
	Stop()
}

var _ processor.Dispatcher = (WorkerPool)(nil)
