package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/xingyaoww/langfuse/pkg/config"
	"github.com/xingyaoww/langfuse/pkg/server/handlers"
	"github.com/xingyaoww/langfuse/pkg/server/middleware"
	"github.com/xingyaoww/langfuse/pkg/store"
	"github.com/xingyaoww/langfuse/pkg/telemetry/logging"
	"github.com/xingyaoww/langfuse/pkg/telemetry/metrics"
)

// Server is the HTTP server for session trace queries.
type Server struct {
	config   *config.Config
	storage  store.Storage
	logger   *logging.Logger
	metrics  *metrics.QueryMetrics
	registry *prometheus.Registry

	sessions *handlers.SessionTracesHandler

	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a new trace query server.
func NewServer(cfg *config.Config, storage store.Storage, logger *logging.Logger, qm *metrics.QueryMetrics, registry *prometheus.Registry) *Server {
	return &Server{
		config:       cfg,
		storage:      storage,
		logger:       logger,
		metrics:      qm,
		registry:     registry,
		sessions:     handlers.NewSessionTracesHandler(storage, logger, qm, cfg.Query),
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.Server.ListenAddress,
		Handler:        handler,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting trace query server",
			"address", s.config.Server.ListenAddress,
			"metrics_enabled", s.config.Telemetry.Metrics.Enabled,
			"rate_limit_enabled", s.config.RateLimit.Enabled,
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		s.logger.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		s.logger.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.logger.Info("initiating graceful shutdown",
			"timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("trace query server stopped")
	})

	return shutdownErr
}

// UpdateQueryConfig applies a reloaded query configuration to the session
// routes without restarting the server.
func (s *Server) UpdateQueryConfig(cfg config.QueryConfig) {
	s.sessions.UpdateQueryConfig(cfg)
	s.logger.Info("query configuration reloaded",
		"timeout", cfg.Timeout.String(),
		"suppress_warnings", cfg.SuppressWarnings,
	)
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/public/sessions/{sessionId}/traces", s.sessions.Traces)
	mux.HandleFunc("GET /api/public/sessions/{sessionId}/traces/advice", s.sessions.Advice)
	mux.Handle("GET /health", handlers.NewHealthHandler())
	mux.Handle("GET /ready", handlers.NewReadyHandler(s.storage))

	if s.config.Telemetry.Metrics.Enabled {
		mux.Handle("GET "+s.config.Telemetry.Metrics.Path, metrics.Handler(s.registry))
	}

	var handler http.Handler = mux

	// Rate limiting applies before the handlers see the request.
	var bucket *middleware.TokenBucket
	if s.config.RateLimit.Enabled {
		bucket = middleware.NewTokenBucket(s.config.RateLimit.Burst, s.config.RateLimit.RequestsPerSecond)
	}
	handler = middleware.RateLimit(bucket)(handler)

	handler = middleware.RequestID(handler)

	// Recovery is outermost so a panic anywhere below still yields a response.
	handler = middleware.Recovery(handler)

	return handler
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
