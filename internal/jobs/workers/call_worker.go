package workers

import (
	"context"

	"finecho-server/internal/calls/processor"
	"finecho-server/internal/jobs"
	"finecho-server/internal/observability"

	"github.com/hibiken/asynq"
)

// JobRunner is satisfied by *processor.CallProcessor
type JobRunner interface {
	RunJob(ctx context.Context, job processor.Job) error
}

// CallWorker handles call:process tasks
type CallWorker struct {
	runner JobRunner
	logger *observability.Logger
}

// NewCallWorker creates a new call worker
func NewCallWorker(runner JobRunner, logger *observability.Logger) *CallWorker {
	return &CallWorker{
		runner: runner,
		logger: logger,
	}
}

// ProcessCallTask runs the pipeline for one call. Pipeline failures are recorded on
// the call row, so only a malformed payload is reported back to asynq, and it is
// skipped rather than retried.
func (w *CallWorker) ProcessCallTask(ctx context.Context, task *asynq.Task) error {
	job, err := jobs.ParseCallProcessTask(task)
	if err != nil {
		w.logger.Error(ctx, "failed to parse call process task", err)
		return asynq.SkipRetry
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "call_id", Value: job.CallID.String()})
	if taskID, ok := asynq.GetTaskID(ctx); ok {
		ctx = observability.WithFields(ctx, observability.Field{Key: "task_id", Value: taskID})
	}

	return w.runner.RunJob(ctx, job)
}
