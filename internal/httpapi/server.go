package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/campaignhq/maestro/internal/metrics"
	"github.com/campaignhq/maestro/pkg/team"
)

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Service *team.Service
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

// Server exposes the orchestration service over HTTP
type Server struct {
	addr    string
	service *team.Service
	metrics *metrics.Metrics
	logger  zerolog.Logger
	server  *http.Server
}

// NewServer creates a new HTTP server
func NewServer(cfg Config) (*Server, error) {
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Service == nil {
		return nil, fmt.Errorf("service is required")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewMetrics()
	}

	return &Server{
		addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		service: cfg.Service,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}, nil
}

// Handler builds the HTTP route tree
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Post("/sessions", s.handleCreateSession)
	r.Get("/sessions/{id}", s.handleGetSession)
	r.Patch("/sessions/{id}/context", s.handleMergeSessionContext)

	r.Route("/team", func(r chi.Router) {
		r.Get("/agents", s.handleListAgents)
		r.Post("/agents", s.handleRegisterAgent)
		r.Get("/agents/{agent_id}", s.handleGetAgent)
		r.Get("/tasks", s.handleListTasks)
		r.Post("/tasks", s.handleExecuteTask)
		r.Get("/tasks/{task_id}", s.handleGetTask)
		r.Post("/route", s.handleRouteTask)
	})

	return r
}

// Start begins serving and blocks until the listener stops
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info().Str("addr", s.addr).Msg("HTTP server listening")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	s.logger.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
