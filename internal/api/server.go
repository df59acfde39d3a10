// Copyright (c) 2026 ComicHub. All rights reserved.

/*
Package api assembles the chi router, the middleware chain, and the domain
handler groups into a runnable [http.Server].

It is the composition root of the HTTP surface: domain packages expose a
Routes() chi.Router each and know nothing about where they are mounted, and
nothing below this package constructs an http.Server.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/comics/comic"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/comics/schedule"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/config"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/constants"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/middleware"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/users/account"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/users/message"
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
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Account handles registration, login, password reset, and profiles.
	Account *account.Handler

	// Comic handles the catalogue and the volume/chapter/page hierarchy.
	Comic *comic.Handler

	// Schedule manages per-comic release schedules.
	Schedule *schedule.Handler

	// Message handles the moderation inbox.
	Message *message.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg, cfg.ExtraOrigins))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/accounts", h.Account.Routes())
		api.Mount("/comics", h.Comic.Routes())
		api.Mount("/schedules", h.Schedule.Routes())
		api.Mount("/messages", h.Message.Routes())
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

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
