// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the FishEye HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and .env).
//  3. Pick the like ledger: PostgreSQL, Redis, or memory.
//  4. Connect to RabbitMQ when like events are enabled.
//  5. Open the catalog source and build the stores.
//  6. Warm the stores (a failure is logged, the next request retries).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/fisheye/internal/api"
	"github.com/taibuivan/fisheye/internal/core/catalog"
	"github.com/taibuivan/fisheye/internal/core/media"
	"github.com/taibuivan/fisheye/internal/core/photographer"
	"github.com/taibuivan/fisheye/internal/core/portfolio"
	"github.com/taibuivan/fisheye/internal/platform/config"
	"github.com/taibuivan/fisheye/internal/platform/constants"
	"github.com/taibuivan/fisheye/internal/platform/migration"
	pgstore "github.com/taibuivan/fisheye/internal/platform/postgres"
	"github.com/taibuivan/fisheye/internal/platform/rabbitmq"
	redisstore "github.com/taibuivan/fisheye/internal/platform/redis"
	"github.com/taibuivan/fisheye/internal/render"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("source", cfg.SourceURL),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Root context for background workers (rate limiter cleanup).
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	health := api.HealthDependencies{}

	// ── 3. Like Ledger ────────────────────────────────────────────────────
	var ledger media.Ledger = media.NewMemoryLedger()

	switch {
	case cfg.DatabaseURL != "":
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, log), "run migrations")

		ledger = media.NewPostgresLedger(pool)
		health.CheckDatabase = func() error {
			return pgstore.Ping(context.Background(), pool)
		}

	case cfg.RedisURL != "":
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		ledger = media.NewRedisLedger(rdb)
		health.CheckCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	}

	log.Info("like_ledger_selected", slog.String("ledger", fmt.Sprintf("%T", ledger)))

	// ── 4. Like Events ────────────────────────────────────────────────────
	var publisher media.LikePublisher = media.NopPublisher{}

	if cfg.AMQPURL != "" {
		broker, err := rabbitmq.NewClient(cfg.AMQPURL, cfg.AMQPQueue, log)
		must(log, err, "connect to rabbitmq")
		defer broker.Close()

		publisher = media.NewQueuePublisher(broker)
	}

	// ── 5. Catalog ────────────────────────────────────────────────────────
	origin, err := catalog.Open(startupCtx, cfg.SourceURL, catalog.Options{
		Timeout:           cfg.SourceTimeout,
		S3Region:          cfg.S3Region,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
	})
	must(log, err, "open catalog source")

	shared := catalog.Shared(origin)
	photographerStore := photographer.NewStore(shared)
	mediaStore := media.NewStore(shared, ledger)

	sorter, err := media.NewSorter(cfg.SortLocale)
	must(log, err, "build media sorter")

	health.CheckCatalog = func() error {
		for name, state := range map[string]catalog.State{
			"photographers": photographerStore.State(),
			"media":         mediaStore.State(),
		} {
			if state != catalog.StateReady {
				return fmt.Errorf("%s store is %s", name, state)
			}
		}
		return nil
	}

	// ── 6. Warm-up ────────────────────────────────────────────────────────
	warm(startupCtx, log, photographerStore, mediaStore)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	likeController := media.NewLikeController(mediaStore, origin, ledger, publisher, log)
	portfolioService := portfolio.NewService(
		photographer.NewService(photographerStore, origin, log),
		media.NewService(mediaStore, origin, sorter, likeController, log),
		render.NewCards(cfg.AssetsBase),
	)

	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Portfolio: portfolio.NewHandler(portfolioService),
	}

	server := api.NewServer(rootCtx, cfg, log, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// warm loads both stores so the first visitor does not pay for the fetch.
func warm(ctx context.Context, log *slog.Logger, photographers *photographer.Store, medium *media.Store) {
	loadedPhotographers, err := photographers.Load(ctx)
	if err != nil {
		log.Warn("catalog_warmup_failed", slog.String("store", "photographers"), slog.Any("error", err))
		return
	}

	loadedMedia, err := medium.Load(ctx)
	if err != nil {
		log.Warn("catalog_warmup_failed", slog.String("store", "media"), slog.Any("error", err))
		return
	}

	log.Info("catalog_loaded",
		slog.Int("photographers", len(loadedPhotographers)),
		slog.Int("media", len(loadedMedia)),
	)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
