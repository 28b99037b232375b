// Package server exposes the admin HTTP surface: recipient registration,
// health, metrics and recent history.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/platea/sector-monitor/internal/repository/sqlite"
)

// Registrar is the dispatcher surface the admin API consumes.
type Registrar interface {
	RegisterPhone(ctx context.Context, phone string) (string, error)
	UnregisterPhone(ctx context.Context, phone string) (string, error)
	ActiveRecipientCount(ctx context.Context) int
	IsConfigured() bool
}

// Server wraps the admin HTTP server.
type Server struct {
	log  *slog.Logger
	http *http.Server
}

// New creates the admin server listening on addr.
func New(log *slog.Logger, addr string, registrar Registrar, repo sqlite.Interface) *Server {
	h := &handler{log: log, registrar: registrar, repo: repo}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	c := corslib.New(corslib.Options{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	r.Use(c.Handler)

	r.Get("/healthz", h.health)
	r.Get("/metrics", h.metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", h.status)
		r.Get("/history", h.history)
		r.Post("/register", h.register)
		r.Post("/unregister", h.unregister)
	})

	return &Server{
		log: log,
		http: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the routed handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("Admin API listening", "addr", s.http.Addr)

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("admin server: %w", err)
	}

	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("admin server shutdown: %w", err)
	}

	return nil
}
