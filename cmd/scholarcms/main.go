// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/olegiv/scholarcms/internal/cache"
	"github.com/olegiv/scholarcms/internal/config"
	"github.com/olegiv/scholarcms/internal/handler"
	"github.com/olegiv/scholarcms/internal/handler/api"
	"github.com/olegiv/scholarcms/internal/logging"
	"github.com/olegiv/scholarcms/internal/middleware"
	"github.com/olegiv/scholarcms/internal/scheduler"
	"github.com/olegiv/scholarcms/internal/service"
	"github.com/olegiv/scholarcms/internal/store"
	"github.com/olegiv/scholarcms/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

const shutdownTimeout = 30 * time.Second

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "ScholarCMS - scholarship site menu manager\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_DB_PATH                SQLite database path (default: ./data/scholarcms.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_SERVER_HOST            Listen host (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_SERVER_PORT            Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_ENV                    Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_LOG_LEVEL              debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_REDIS_URL              Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_CACHE_TTL              Menu cache TTL in seconds (default: 3600)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_REQUEST_TIMEOUT        Per-request timeout (default: 30s)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_RATE_LIMIT_RPS         API requests per second per client (default: 20)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_ORPHAN_AUDIT_INTERVAL  Orphaned item audit interval (default: 1h)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_EVENT_RETENTION        Event log retention, 0 keeps forever (default: 720h)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_DO_SEED                Create default menus on first start (default: true)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.New(appVersion, appGitCommit, appBuildTime)
	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	if cfg.DoSeed {
		if err := store.Seed(context.Background(), db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	backend := cache.NewCache(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      cfg.CacheTTLDuration(),
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	}, logger)
	defer func() {
		if err := backend.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	events := service.NewEventService(db)
	menus := service.NewMenuService(db, cache.NewMenuCache(backend, cfg.CacheTTLDuration()), events)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	sched, err := newScheduler(cfg, logger, menus, events, limiter)
	if err != nil {
		return fmt.Errorf("registering jobs: %w", err)
	}

	router := newRouter(routerDeps{
		cfg:     cfg,
		api:     api.NewHandler(menus, events),
		health:  handler.NewHealthHandler(db, backend, info.Version),
		limiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	sched.Start()

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
		if err := sched.Stop(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("scheduler shutdown: %w", err))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("server stopped")
	return nil
}

// newScheduler registers the background jobs. Nothing runs until Start.
func newScheduler(cfg *config.Config, logger *slog.Logger, menus *service.MenuService,
	events *service.EventService, limiter *middleware.RateLimiter) (*scheduler.Scheduler, error) {
	s := scheduler.New(logger)

	if err := s.Register(scheduler.JobOrphanAudit,
		"Log menu items whose parent no longer exists",
		scheduler.Every(cfg.OrphanAuditInterval),
		scheduler.OrphanAudit(menus, logger)); err != nil {
		return nil, err
	}

	if cfg.EventRetention > 0 {
		if err := s.Register(scheduler.JobEventRetention,
			"Delete event log entries past retention",
			"@daily",
			scheduler.EventRetention(events, cfg.EventRetention, logger)); err != nil {
			return nil, err
		}
	}

	if err := s.Register(scheduler.JobRateLimiterTrim,
		"Drop idle rate limiter buckets",
		"@every 10m",
		scheduler.Func(limiter.Prune)); err != nil {
		return nil, err
	}

	return s, nil
}
