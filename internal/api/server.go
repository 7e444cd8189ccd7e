// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/promptdb/internal/catalog"
	"github.com/taibuivan/promptdb/internal/core/category"
	"github.com/taibuivan/promptdb/internal/core/prompt"
	"github.com/taibuivan/promptdb/internal/core/tag"
	"github.com/taibuivan/promptdb/internal/core/transfer"
	"github.com/taibuivan/promptdb/internal/platform/config"
	"github.com/taibuivan/promptdb/internal/platform/constants"
	"github.com/taibuivan/promptdb/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	Prompts    *prompt.Handler
	Categories *category.Handler
	Tags       *tag.Handler

	// Transfer serves /export/prompts and /import/prompts.
	Transfer *transfer.Handler
}

// NewHandlers builds every handler set over a wired catalog.
func NewHandlers(c *catalog.Catalog, cfg *config.Config, log *slog.Logger) Handlers {
	liveness, readiness := NewHealthHandlers(HealthDependencies{
		CheckDatabase: c.PingDatabase,
		CheckCache:    c.PingCache,
	}, log)

	return Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Prompts:    prompt.NewHandler(c.Prompts),
		Categories: category.NewHandler(c.Categories),
		Tags:       tag.NewHandler(c.Tags),
		Transfer:   transfer.NewHandler(c.Transfer, cfg.MaxImportBytes),
	}
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. ctx bounds background work such as the rate
// limiter's sweeper.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	limiter := middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery)
	r.Use(middleware.CORS(cfg.IsDevelopment(), cfg.AllowedOrigins))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Health probes skip the timeout and the limiter.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Use(chimw.Timeout(constants.GlobalRequestTimeout))
		api.Use(limiter.Handler)

		api.Mount("/prompts", h.Prompts.Routes())
		api.Mount("/categories", h.Categories.Routes())
		api.Mount("/tags", h.Tags.Routes())
		api.Mount("/", h.Transfer.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
