// Package server provides the HTTP API for Genie.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/genie/internal/config"
	"github.com/hyperjump/genie/internal/session"
	"go.uber.org/zap"
)

// Server is the HTTP server for the Genie API. It owns a single session; the
// mutex serializes the session operations because they mutate shared state.
type Server struct {
	session *session.Session
	mu      sync.Mutex
	config  *config.ServerConfig
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(sess *session.Session, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{
		session: sess,
		config:  cfg,
		logger:  logger,
	}
}

// Router builds the API router. Exposed for tests.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(300 * time.Second))

	r.Post("/api/v1/documents", s.handleProcessDocuments)
	r.Post("/api/v1/chat", s.handleChat)
	r.Post("/api/v1/summary", s.handleSummary)
	r.Post("/api/v1/podcast/script", s.handleScript)
	r.Post("/api/v1/podcast/audio", s.handleAudio)
	r.Delete("/api/v1/session", s.handleReset)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
