package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"finecho-server/internal/calls/processor"

	"github.com/hibiken/asynq"
)

// Job type constants
const (
	TypeCallProcess = "call:process"
)

// Queue names
const (
	QueuePipeline = "pipeline"
)

// taskTimeoutMargin leaves room for analysis and store writes after the
// transcription subprocess has used its whole budget.
const taskTimeoutMargin = 5 * time.Minute

// NewCallProcessTask creates a call processing task. Failed calls are never
// retried automatically.
func NewCallProcessTask(job processor.Job, transcribeTimeout time.Duration) (*asynq.Task, error) {
	data, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal call job: %w", err)
	}

	return asynq.NewTask(TypeCallProcess, data,
		asynq.Queue(QueuePipeline),
		asynq.MaxRetry(0),
		asynq.Timeout(transcribeTimeout+taskTimeoutMargin),
	), nil
}

// ParseCallProcessTask decodes the job carried by a call processing task.
func ParseCallProcessTask(task *asynq.Task) (processor.Job, error) {
	var job processor.Job
	if err := json.Unmarshal(task.Payload(), &job); err != nil {
		return processor.Job{}, fmt.Errorf("failed to unmarshal call job payload: %w", err)
	}
	return job, nil
}
