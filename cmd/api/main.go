// Copyright (c) 2026 ComicHub. All rights reserved.

// Command api is the entry point for the ComicHub HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers and bootstrap the admin account.
//  7. Start the daily release scheduler.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/api"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/comics/comic"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/comics/release"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/comics/schedule"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/config"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/constants"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/email"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/migration"
	pgstore "github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/postgres"
	redisstore "github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/redis"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/sec"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/users/account"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/users/message"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "comichub"))
	slog.SetDefault(log)

	log.Info("[ComicHub] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "comichub"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Auth & Mail ────────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	mailer := email.NewMailer(email.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailFrom,
		BaseURL:  cfg.PublicBaseURL,
	}, log)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	accountRepository := account.NewPostgresRepository(pool)
	tokenRepository := account.NewRedisTokenRepository(rdb)
	accountService := account.NewService(accountRepository, tokenRepository, jwtSvc, mailer, log)
	accountHandler := account.NewHandler(accountService)

	comicRepository := comic.NewPostgresRepository(pool)
	comicService := comic.NewService(comicRepository, log)
	comicHandler := comic.NewHandler(comicService)

	scheduleRepository := schedule.NewPostgresRepository(pool)
	scheduleService := schedule.NewService(scheduleRepository, comicRepository, log)
	scheduleHandler := schedule.NewHandler(scheduleService)

	messageRepository := message.NewPostgresRepository(pool)
	messageService := message.NewService(messageRepository, log)
	messageHandler := message.NewHandler(messageService)

	// Bootstrap the admin account on first run.
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		created, err := accountService.EnsureAdmin(startupCtx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
		must(log, err, "bootstrap admin account")
		if created {
			log.Info("admin_account_created", slog.String("username", cfg.AdminUsername))
		}
	}

	// ── 9. Release Scheduler ──────────────────────────────────────────────
	// Background daemon that publishes due pages once per day.
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	defer schedulerCancel()

	releaseStore := release.NewPostgresStore(pool)
	releaseChecker := release.NewChecker(releaseStore, nil, log)
	releaseScheduler := release.NewScheduler(releaseChecker, nil, cfg.ReleaseCheckHour, cfg.ReleaseCheckMinute, log)
	must(log, releaseScheduler.Start(schedulerCtx), "start release scheduler")

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Account:   accountHandler,
		Comic:     comicHandler,
		Schedule:  scheduleHandler,
		Message:   messageHandler,
	}

	server := api.NewServer(schedulerCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	if err := releaseScheduler.Stop(); err != nil {
		log.Error("scheduler stop error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
