package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"finecho-server/internal/calls/processor"
	"finecho-server/internal/metrics"
	"finecho-server/internal/observability"
)

var (
	ErrQueueFull      = errors.New("pipeline queue is full")
	ErrPoolClosed     = errors.New("worker pool is shutting down")
	ErrPoolNotStarted = errors.New("worker pool not started")
)

// ProcessingResult represents the result of running one job.
type ProcessingResult struct {
	Job   processor.Job
	Error error
}

// ResultCallback is called after each job is run.
type ResultCallback func(result ProcessingResult)

// WorkerPoolConfig holds configuration for the worker pool.
type WorkerPoolConfig struct {
	// NumWorkers is the number of calls processed concurrently.
	NumWorkers int

	// QueueSize is the size of the job buffer. Dispatch fails with
	// ErrQueueFull once it is full.
	QueueSize int

	// DrainTimeout is the maximum time to wait for queued and in-flight
	// jobs during graceful shutdown.
	DrainTimeout time.Duration

	// OnResult is called after each job is run (optional).
	OnResult ResultCallback
}

// DefaultWorkerPoolConfig returns sensible defaults for a worker pool.
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		NumWorkers:   4,
		QueueSize:    100,
		DrainTimeout: 15 * time.Minute,
	}
}

// pool implements the WorkerPool interface.
type pool struct {
	config WorkerPoolConfig
	runner JobRunner
	logger *observability.Logger

	jobs chan processor.Job
	wg   sync.WaitGroup

	// Lifecycle management
	mu       sync.Mutex
	started  bool
	draining bool
	stopped  bool
	cancelFn context.CancelFunc
}

// NewWorkerPool creates a new worker pool that runs pipeline jobs in-process.
func NewWorkerPool(
	config WorkerPoolConfig,
	runner JobRunner,
	logger *observability.Logger,
) WorkerPool {
	defaults := DefaultWorkerPoolConfig()
	if config.NumWorkers <= 0 {
		config.NumWorkers = defaults.NumWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.DrainTimeout <= 0 {
		config.DrainTimeout = defaults.DrainTimeout
	}

	return &pool{
		config: config,
		runner: runner,
		logger: logger,
		jobs:   make(chan processor.Job, config.QueueSize),
	}
}

// Start initializes the worker pool with N workers.
func (p *pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("worker pool already started")
	}
	if p.stopped {
		return fmt.Errorf("worker pool already stopped")
	}

	workerCtx, cancel := context.WithCancel(ctx)
	p.cancelFn = cancel
	p.started = true

	for i := 0; i < p.config.NumWorkers; i++ {
		p.wg.Add(1)
		go p.worker(workerCtx, i)
	}

	p.logger.Info(ctx, fmt.Sprintf("Started %d pipeline workers", p.config.NumWorkers))
	return nil
}

// Dispatch queues a job. The send happens under the lock so it can never race
// with Drain closing the channel.
func (p *pool) Dispatch(ctx context.Context, job processor.Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return ErrPoolNotStarted
	}
	if p.draining || p.stopped {
		metrics.DispatchRejected.WithLabelValues("shutting_down").Inc()
		return ErrPoolClosed
	}

	select {
	case p.jobs <- job:
		return nil
	default:
		metrics.DispatchRejected.WithLabelValues("queue_full").Inc()
		p.logger.Warn(ctx, fmt.Sprintf("pipeline queue full (%d jobs), rejecting call", p.config.QueueSize))
		return ErrQueueFull
	}
}

// Drain stops accepting new jobs and waits for queued and in-flight jobs to complete.
func (p *pool) Drain(ctx context.Context) error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return ErrPoolNotStarted
	}
	if p.draining {
		p.mu.Unlock()
		return fmt.Errorf("worker pool already draining")
	}
	p.draining = true
	close(p.jobs)
	p.mu.Unlock()

	p.logger.Info(ctx, fmt.Sprintf("Draining worker pool, waiting for %d queued jobs", len(p.jobs)))

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	drainCtx, cancel := context.WithTimeout(ctx, p.config.DrainTimeout)
	defer cancel()

	select {
	case <-done:
		p.logger.Info(ctx, "Successfully drained worker pool")
		return nil
	case <-drainCtx.Done():
		p.logger.Warn(ctx, "Drain timeout exceeded, forcing shutdown")
		p.Stop()
		return fmt.Errorf("drain timeout exceeded")
	}
}

// Stop immediately stops all workers.
func (p *pool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	p.stopped = true

	if p.cancelFn != nil {
		p.cancelFn()
	}

	if !p.draining {
		p.draining = true
		close(p.jobs)
	}
}

// worker runs jobs until the channel is closed or the context is cancelled.
func (p *pool) worker(ctx context.Context, workerID int) {
	defer p.wg.Done()

	workerCtx := observability.WithFields(ctx, observability.Field{Key: "worker_id", Value: workerID})
	p.logger.Debug(workerCtx, fmt.Sprintf("Worker %d started", workerID))

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug(workerCtx, fmt.Sprintf("Worker %d stopping: context cancelled", workerID))
			return

		case job, ok := <-p.jobs:
			if !ok {
				p.logger.Debug(workerCtx, fmt.Sprintf("Worker %d stopping: job channel closed", workerID))
				return
			}

			jobCtx := observability.WithFields(workerCtx,
				observability.Field{Key: "call_id", Value: job.CallID.String()},
			)

			err := p.runner.RunJob(jobCtx, job)
			if err != nil {
				p.logger.Error(jobCtx, fmt.Sprintf("Worker %d failed to run job", workerID), err)
			}

			if p.config.OnResult != nil {
				p.config.OnResult(ProcessingResult{Job: job, Error: err})
			}
		}
	}
}
