package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tair/kitchen-stock/internal/app"
	"github.com/tair/kitchen-stock/internal/config"
	inventoryrepo "github.com/tair/kitchen-stock/internal/inventory/repository"
	orderrepo "github.com/tair/kitchen-stock/internal/order/repository"
	"github.com/tair/kitchen-stock/pkg/database"
	"github.com/tair/kitchen-stock/pkg/logger"
	"github.com/tair/kitchen-stock/pkg/tracing"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	logger.Init(cfg.Service.Name, cfg.Service.IsDevelopment())
	logger.SetLevel(cfg.Service.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.Service.Name).
		Str("environment", cfg.Service.Environment).
		Str("storage", cfg.Storage.Driver).
		Str("alert_queue", cfg.RabbitMQ.Driver).
		Bool("redis_locks", cfg.Redis.Enabled()).
		Bool("kafka_broadcast", cfg.Kafka.Enabled()).
		Msg("Starting kitchen service")

	// Initialize tracer
	tp, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		JaegerEndpoint: cfg.Service.JaegerEndpoint,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
		}
	}()

	application, cleanup, err := initialize(cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: application.Router(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Logger.Info().
			Str("port", cfg.Server.Port).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return application.Scheduler.Start(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Logger.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Logger.Error().Err(err).Msg("Service stopped with error")
		os.Exit(1)
	}

	logger.Logger.Info().Msg("Server exited")
}

// initialize connects storage for the configured driver and wires the app.
func initialize(cfg *config.Config) (*app.App, func(), error) {
	if cfg.Storage.Driver == config.DriverMemory {
		logger.Logger.Warn().Msg("Using in-memory storage, data is lost on restart")
		return app.InitializeMemoryApp(cfg)
	}

	db, err := database.NewGormConnection(cfg.Postgres)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if err := migrate(db); err != nil {
		closeDB()
		return nil, nil, err
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	application, cleanup, err := app.InitializeApp(cfg, db)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return application, func() {
		cleanup()
		closeDB()
	}, nil
}

func migrate(db *gorm.DB) error {
	if err := inventoryrepo.AutoMigrate(db); err != nil {
		return err
	}
	return orderrepo.AutoMigrate(db)
}
