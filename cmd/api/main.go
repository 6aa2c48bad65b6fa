package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meditrack/clinic-system/internal/api"
	"github.com/meditrack/clinic-system/internal/core/service"
	"github.com/meditrack/clinic-system/internal/infrastructure/config"
	mongodb "github.com/meditrack/clinic-system/internal/infrastructure/db/mongo"
	redisdb "github.com/meditrack/clinic-system/internal/infrastructure/db/redis"
	"github.com/meditrack/clinic-system/internal/infrastructure/queue"
	"github.com/meditrack/clinic-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log := logger.Get()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect mongodb client")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connection established")

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis client")
		}
	}()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connection established")

	subscriptionRepo := mongodb.NewSubscriptionRepository(db)
	dedup := redisdb.NewDedupChecker(rdb)
	billingService := service.NewBillingService(subscriptionRepo, dedup, log)

	dispatcher := queue.NewDispatcher(cfg.WebhookWorkers, billingService, log)
	dispatcher.Start(ctx)

	// Demo deployments run a single shared front-desk session, restored from
	// Redis across restarts.
	var sessionStore *service.SessionStore
	if cfg.DemoAuth {
		sessionStore = service.NewSessionStore(
			service.NewMockVerifier(),
			redisdb.NewSessionRepository(rdb),
			subscriptionRepo,
			log,
		)
		sessionStore.Initialize(ctx)
	}

	e := api.NewRouter(db, rdb, dispatcher, sessionStore, cfg, log)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: e,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info().Msg("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
