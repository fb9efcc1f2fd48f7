// Package server exposes the solve pipeline over HTTP.
//
// Routes:
//
//	POST   /api/v1/solve         - run the pipeline and persist the layout
//	GET    /api/v1/layouts       - list persisted layouts, newest first
//	GET    /api/v1/layouts/{id}  - fetch a persisted layout
//	DELETE /api/v1/layouts/{id}  - remove a persisted layout
//	GET    /healthz              - liveness probe
//
// The server is a thin shell: all solve logic lives in the pipeline
// Runner and all persistence in the store, so the CLI and the service
// share one code path.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/mhartvig/colstack/pkg/pipeline"
	"github.com/mhartvig/colstack/pkg/store"
)

// Config configures the HTTP service.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Runner executes solves. Required.
	Runner *pipeline.Runner

	// Store persists layouts. Defaults to an in-memory store.
	Store store.Store

	// Logger receives request and lifecycle logs. Defaults to the
	// package default logger.
	Logger *log.Logger

	// ShutdownTimeout bounds graceful shutdown. Defaults to 10s.
	ShutdownTimeout time.Duration
}

// Server is the colstack HTTP service.
type Server struct {
	cfg    Config
	router chi.Router
}

// New assembles the service routes. Call Run to serve.
func New(cfg Config) *Server {
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{cfg: cfg}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(cfg.Logger))
	r.Use(recoverer(cfg.Logger))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/layouts", s.handleListLayouts)
		r.Get("/layouts/{id}", s.handleGetLayout)
		r.Delete("/layouts/{id}", s.handleDeleteLayout)
	})
	s.router = r

	return s
}

// Handler returns the assembled route tree. Useful for tests and for
// embedding the service under an outer mux.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.cfg.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
