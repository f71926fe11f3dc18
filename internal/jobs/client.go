package jobs

import (
	"context"
	"fmt"
	"time"

	"finecho-server/internal/calls/processor"
	"finecho-server/internal/observability"

	"github.com/hibiken/asynq"
)

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Client enqueues call processing jobs for cmd/worker
type Client struct {
	client            taskEnqueuer
	transcribeTimeout time.Duration
	logger            *observability.Logger
}

// NewClient creates a new job client
func NewClient(opt asynq.RedisClientOpt, transcribeTimeout time.Duration, logger *observability.Logger) *Client {
	return &Client{
		client:            asynq.NewClient(opt),
		transcribeTimeout: transcribeTimeout,
		logger:            logger,
	}
}

// Close closes the client connection
func (c *Client) Close() error {
	return c.client.Close()
}

// Dispatch enqueues a call:process task
func (c *Client) Dispatch(ctx context.Context, job processor.Job) error {
	task, err := NewCallProcessTask(job, c.transcribeTimeout)
	if err != nil {
		c.logger.Error(ctx, "failed to create call process task", err)
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		c.logger.Error(ctx, "failed to enqueue call process task", err)
		return fmt.Errorf("failed to enqueue call process task: %w", err)
	}

	c.logger.Info(ctx, fmt.Sprintf("enqueued call process task: %s (queue: %s)", info.ID, info.Queue))
	return nil
}

var _ processor.Dispatcher = (*Client)(nil)
