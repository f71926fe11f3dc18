package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apisetup "finecho-server/internal/api"
	"finecho-server/internal/bootstrap"
	"finecho-server/internal/config"
	"finecho-server/internal/observability"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	deps       *bootstrap.Dependencies
	config     *config.Config
	logger     *observability.Logger

	shutdownTimeout time.Duration
}

// New creates a new Server instance
func New(cfg *config.Config, deps *bootstrap.Dependencies, logger *observability.Logger) *Server {
	return &Server{
		config:          cfg,
		deps:            deps,
		logger:          logger,
		shutdownTimeout: 30 * time.Second,
	}
}

// Setup configures the HTTP router with middleware and routes
func (s *Server) Setup() {
	if s.config.Server.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	s.router = gin.New()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Accept", "Cache-Control"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	corsConfig.AllowOrigins = []string{s.config.Server.WebAppURI}

	// Allow localhost in non-production
	if !s.config.Server.IsProduction && s.config.Server.WebAppURI != "http://localhost:3000" {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, "http://localhost:3000")
	}

	// Apply middleware
	s.router.Use(cors.New(corsConfig))
	s.router.Use(observability.Middleware(s.logger))

	// Register routes
	rootRouter := s.router.Group("/")
	api := apisetup.New(
		rootRouter,
		s.deps.AuthHandler,
		s.deps.CallsHandler,
		s.deps.AdvisorHandler,
		s.deps.SummariesHandler,
		s.deps.UploadLimiter,
	)
	api.RegisterRoutes()
}

// Start begins listening for HTTP requests and starts the in-process pipeline workers
func (s *Server) Start(ctx context.Context) error {
	if s.deps.WorkerPool != nil {
		if err := s.deps.WorkerPool.Start(ctx); err != nil {
			return fmt.Errorf("failed to start worker pool: %w", err)
		}
	}

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run the server in a goroutine so that it doesn't block
	go func() {
		s.logger.Info(ctx, fmt.Sprintf("Server starting on port %d", s.config.Server.Port))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(ctx, "server failed to start", err)
			os.Exit(1)
		}
	}()

	return nil
}

// WaitForShutdown blocks until a shutdown signal is received, then gracefully shuts down
func (s *Server) WaitForShutdown(ctx context.Context) error {
	// Set up a channel to listen for OS signals for shutdown
	quit := make(chan os.Signal, 1)
	// kill (no param) default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received
	<-quit
	s.logger.Info(ctx, "Shutting down server...")

	return s.Shutdown(ctx)
}

// Shutdown stops taking requests, lets running pipelines finish and releases
// dependencies. Every step runs even when an earlier one fails.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	var httpErr error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			httpErr = fmt.Errorf("server forced to shutdown: %w", err)
			s.logger.Error(ctx, "http server did not shut down cleanly", err)
		}
	}

	if s.deps.WorkerPool != nil {
		if err := s.deps.WorkerPool.Drain(context.Background()); err != nil {
			s.logger.Error(ctx, "worker pool did not drain cleanly", err)
		}
	}

	// Cleanup dependencies
	s.deps.Cleanup()

	if httpErr != nil {
		return httpErr
	}
	s.logger.Info(ctx, "Server exited gracefully")
	return nil
}
