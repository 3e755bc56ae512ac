// SPDX-License-Identifier: MIT

// Package server exposes the numlab engines as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/numlab/internal/config"
)

// shutdownGrace bounds graceful shutdown.
const shutdownGrace = 10 * time.Second

// Server wires routes, middleware and metrics around the engines.
type Server struct {
	cfg      config.Config
	log      zerolog.Logger
	router   *mux.Router
	metrics  *Metrics
	limiter  *rate.Limiter
	validate *validator.Validate
}

// New builds a Server from cfg. Nothing listens until ListenAndServe.
func New(cfg config.Config, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		log:      logger,
		router:   mux.NewRouter(),
		metrics:  NewMetrics(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	if cfg.Server.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)
	}
	s.setupRoutes()

	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.accessLogMiddleware)
	s.router.Use(s.recoverMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	routes := []struct {
		path    string
		handler http.HandlerFunc
	}{
		{"/api/direct", s.handleDirect},
		{"/api/iterative", s.handleIterative},
		{"/api/regression", s.handleRegression},
		{"/api/integration", s.handleIntegration},
		{"/api/growth", s.handleGrowth},
		{"/api/blend", s.handleBlend},
		{"/api/bridge", s.handleBridge},
	}
	for _, rt := range routes {
		s.router.Handle(rt.path, s.apiChain(rt.handler)).Methods(http.MethodPost)
	}

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound, "")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotFound, "")
	})
}

// apiChain wraps an engine handler with the limits that apply to computations
// only. Routes stay on the root router so a method mismatch answers 405.
func (s *Server) apiChain(h http.Handler) http.Handler {
	return s.rateLimitMiddleware(s.timeoutMiddleware(s.bodyLimitMiddleware(h)))
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Msg("starting HTTP server")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
