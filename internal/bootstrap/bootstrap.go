package bootstrap

import (
	"context"
	"fmt"

	advisorHandler "finecho-server/internal/advisor/handler"
	advisorProcessor "finecho-server/internal/advisor/processor"
	authHandler "finecho-server/internal/auth/handler"
	authProcessor "finecho-server/internal/auth/processor"
	callsHandler "finecho-server/internal/calls/handler"
	"finecho-server/internal/calls/lock"
	callsProcessor "finecho-server/internal/calls/processor"
	"finecho-server/internal/clients/backboard"
	kafkaClient "finecho-server/internal/clients/kafka"
	redisClient "finecho-server/internal/clients/redis"
	"finecho-server/internal/clients/whisper"
	"finecho-server/internal/config"
	"finecho-server/internal/events"
	"finecho-server/internal/jobs"
	"finecho-server/internal/observability"
	"finecho-server/internal/ratelimit"
	"finecho-server/internal/store"
	summariesHandler "finecho-server/internal/summaries/handler"
	summariesProcessor "finecho-server/internal/summaries/processor"
	"finecho-server/internal/workers"

	"github.com/hibiken/asynq"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Logger *observability.Logger

	// Pipeline
	CallProcessor *callsProcessor.CallProcessor
	WorkerPool    workers.WorkerPool
	JobClient     *jobs.Client

	// Handlers
	AuthHandler      authHandler.Handler
	CallsHandler     callsHandler.Handler
	AdvisorHandler   advisorHandler.Handler
	SummariesHandler summariesHandler.Handler

	// Middleware
	UploadLimiter *ratelimit.Service

	// Clients (for cleanup)
	RedisClient   *redisClient.Client
	KafkaProducer *kafkaClient.Producer
}

// Initialize sets up all dependencies of the HTTP server, including the
// dispatcher selected by PIPELINE_MODE
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps, err := InitializePipeline(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	switch cfg.Pipeline.Mode {
	case config.PipelineModeAsynq:
		deps.JobClient = jobs.NewClient(RedisClientOpt(cfg.Redis), cfg.Transcribe.Timeout, logger)
		deps.CallProcessor.SetDispatcher(deps.JobClient)
		logger.Info(ctx, "call pipeline dispatching to asynq workers")
	default:
		deps.WorkerPool = workers.NewWorkerPool(workers.WorkerPoolConfig{
			NumWorkers: cfg.Pipeline.Workers,
			QueueSize:  cfg.Pipeline.QueueSize,
		}, deps.CallProcessor, logger)
		deps.CallProcessor.SetDispatcher(deps.WorkerPool)
		logger.Info(ctx, "call pipeline running in-process")
	}

	// Initialize auth processor and handler
	authProc := authProcessor.New(&deps.Store, cfg.Auth.JWTSecret, logger)
	deps.AuthHandler = authHandler.New(authProc, logger)

	// Initialize calls handler
	deps.CallsHandler = callsHandler.New(deps.CallProcessor, cfg.Server.MaxUploadMB, logger)
	deps.UploadLimiter = ratelimit.NewService(deps.RedisClient, "upload", cfg.Server.UploadRPM, logger)

	// Initialize advisor processor and handler
	advisorProc := advisorProcessor.New(&deps.Store, logger)
	deps.AdvisorHandler = advisorHandler.New(&advisorProc, logger)

	// Initialize summaries processor and handler
	summariesProc := summariesProcessor.New(&deps.Store, logger)
	deps.SummariesHandler = summariesHandler.New(&summariesProc, logger)

	return deps, nil
}

// InitializePipeline sets up the store, clients and call processor. cmd/worker
// uses it directly since it only runs jobs and never dispatches them.
func InitializePipeline(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Initialize database store
	var err error
	deps.Store, err = store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize Redis; nil when disabled
	deps.RedisClient, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	var locker callsProcessor.Locker
	if deps.RedisClient != nil {
		locker = lock.NewRedisLocker(deps.RedisClient, cfg.Redis.LockTTL)
	} else {
		logger.Warn(ctx, "Redis disabled, call locks are process-local")
		locker = lock.NewMemoryLocker(cfg.Redis.LockTTL)
	}

	// Initialize Kafka producer for call events
	var publisher callsProcessor.EventPublisher
	if cfg.Kafka.Enabled {
		deps.KafkaProducer = kafkaClient.NewProducer(kafkaClient.ProducerConfig{
			Brokers: kafkaClient.ParseBrokers(cfg.Kafka.Brokers),
			Topic:   cfg.Kafka.Topic,
		}, logger)
		publisher = events.NewPublisher(deps.KafkaProducer, logger)
	}

	// Remote analysis stays nil when unconfigured so the pipeline goes straight to heuristics
	var analyzer callsProcessor.RemoteAnalyzer
	if backboardClient := backboard.New(cfg.Backboard, logger); backboardClient.Configured() {
		analyzer = backboardClient
	} else {
		logger.Warn(ctx, "remote analysis not configured, using heuristics only")
	}

	deps.CallProcessor = callsProcessor.New(
		&deps.Store,
		whisper.New(cfg.Transcribe, logger),
		analyzer,
		publisher,
		locker,
		cfg.Server.UploadDir,
		logger,
	)

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	if d.JobClient != nil {
		d.JobClient.Close()
	}
	if d.KafkaProducer != nil {
		d.KafkaProducer.Close()
	}
	if d.RedisClient != nil {
		d.RedisClient.Close()
	}
	d.Store.Close()
}

// RedisClientOpt returns the asynq connection settings shared by the server and cmd/worker
func RedisClientOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
