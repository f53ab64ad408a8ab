// internal/httpserver/server.go
package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/nitron/internal/config"
	"github.com/MrSnakeDoc/nitron/internal/httpserver/deps"
	"github.com/MrSnakeDoc/nitron/internal/httpserver/mw"
	"github.com/MrSnakeDoc/nitron/internal/httpserver/routes"
	"github.com/MrSnakeDoc/nitron/internal/logger"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http    *http.Server
	logger  logger.Logger
	started time.Time
}

// NewRouter builds the router (middlewares, route registration). Split from
// New so tests can drive it with httptest.
func NewRouter(cfg *config.Config, loggerClient logger.Logger, d deps.Deps) chi.Router {
	if d.WriteLimiter == nil {
		d.WriteLimiter = mw.RateLimit(mw.RateLimitConfig{
			Burst:             cfg.RateLimitBurst,
			RefillPerIPPerMin: cfg.RateLimitPerMin,
			MaxEntries:        10000,
			TrustProxy:        cfg.TrustProxy,
		})
	}

	r := chi.NewRouter()

	// --- Global middlewares (safe defaults)
	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)                // X-Request-ID on each request
	r.Use(middleware.Recoverer)                // never crash the process on panic
	r.Use(middleware.Timeout(5 * time.Second)) // per-request timeout, bounds store round-trips
	r.Use(mw.Log(loggerClient))                // structured access logs

	routes.RegisterAll(r, d)

	return r
}

// New builds the HTTP server around NewRouter.
func New(cfg *config.Config, loggerClient logger.Logger, d deps.Deps) *Server {
	s := &http.Server{
		Addr:              cfg.ListenPort,
		Handler:           NewRouter(cfg, loggerClient, d),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{
		http:    s,
		logger:  loggerClient,
		started: d.StartTime,
	}
}

// Start runs the HTTP server (blocks until error or shutdown).
func (s *Server) Start() error {
	s.logger.Infof("HTTP server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	// http.ErrServerClosed is expected on graceful shutdown.
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down...",
		logger.Duration("uptime", time.Since(s.started)))
	return s.http.Shutdown(ctx)
}
