package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"finecho-server/internal/bootstrap"
	"finecho-server/internal/config"
	"finecho-server/internal/jobs"
	"finecho-server/internal/jobs/workers"
	"finecho-server/internal/observability"

	"github.com/hibiken/asynq"
)

func main() {
	// Initialize logger
	logger := observability.NewLogger()
	defer logger.Sync()
	ctx := context.Background()

	logger.Info(ctx, "Starting call pipeline worker...")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx, "failed to load configuration", err)
	}
	if !cfg.Redis.Enabled {
		logger.Fatal(ctx, "worker requires Redis", fmt.Errorf("REDIS_ENABLED=%t", cfg.Redis.Enabled))
	}

	deps, err := bootstrap.InitializePipeline(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize pipeline", err)
	}
	defer deps.Cleanup()

	callWorker := workers.NewCallWorker(deps.CallProcessor, logger)
	redisOpt := bootstrap.RedisClientOpt(cfg.Redis)

	// Create Asynq server with queue configuration
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.Pipeline.Workers,
			Queues: map[string]int{
				jobs.QueuePipeline: 1,
			},
			Logger: &asynqLogger{logger: logger},
			// Error handler
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error(ctx, fmt.Sprintf("task %s failed", task.Type()), err)
			}),
			// Give in-flight transcriptions time to finish on shutdown
			ShutdownTimeout: cfg.Transcribe.Timeout,
		},
	)

	// Create task handler (mux)
	mux := asynq.NewServeMux()
	mux.HandleFunc(jobs.TypeCallProcess, callWorker.ProcessCallTask)

	if err := srv.Start(mux); err != nil {
		logger.Fatal(ctx, "failed to start worker server", err)
	}
	logger.Info(ctx, fmt.Sprintf("Worker server started on Redis: %s", redisOpt.Addr))

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Wait for shutdown signal
	<-sigChan
	logger.Info(ctx, "Shutting down worker server...")

	// Graceful shutdown
	srv.Shutdown()
	logger.Info(ctx, "Worker server stopped")
}

// asynqLogger adapts observability.Logger to asynq.Logger interface
type asynqLogger struct {
	logger *observability.Logger
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(context.Background(), fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(context.Background(), fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(context.Background(), fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(context.Background(), fmt.Sprint(args...), nil)
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(context.Background(), fmt.Sprint(args...), nil)
	os.Exit(1)
}
