package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/backoffice-kit/backoffice/internal/api"
	"github.com/backoffice-kit/backoffice/internal/config"
	"github.com/backoffice-kit/backoffice/internal/logger"
	"github.com/backoffice-kit/backoffice/internal/metrics"
	"github.com/backoffice-kit/backoffice/internal/tracing"
	"github.com/backoffice-kit/backoffice/pkg/engine"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	loggerInstance, err := logger.New(logger.Config{
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
		Development: cfg.Logger.Development,
	})
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer func() {
		_ = loggerInstance.Sync()
	}()

	loggerInstance.Info("Starting back office API", zap.String("config", cfg.File))

	shutdownTracing, err := tracing.Init(context.Background(), tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Environment: cfg.Tracing.Environment,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		loggerInstance.Fatal("error initializing tracing", zap.Error(err))
	}

	seed, err := loadSeed(cfg)
	if err != nil {
		loggerInstance.Fatal("error loading seed", zap.Error(err))
	}
	store := engine.NewSeededStore(seed, engine.WithLogger(loggerInstance.Named("engine").Log))
	loggerInstance.Info("Store ready",
		zap.Int("owners", len(seed.Owners)),
		zap.Int("auditEntries", len(seed.Audit)),
	)

	h := &api.Handler{Store: store}
	if cfg.Metrics.Enabled {
		h.Metrics = metrics.New(nil)
		h.Metrics.WatchOwnership(func() (int, float64) {
			sum, _ := store.OwnershipSummary(context.Background())
			return sum.OwnerCount, sum.TotalOwnership
		})
	}

	router := api.NewRouter(cfg, h, loggerInstance)

	srv := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        tracing.WrapHandler(router, cfg.Tracing.ServiceName),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	go func() {
		loggerInstance.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("mode", cfg.Server.RunMode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	s := <-quit

	loggerInstance.Info("Shutting down server...", zap.String("signal", s.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		loggerInstance.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		loggerInstance.Error("Tracer shutdown failed", zap.Error(err))
	}

	loggerInstance.Info("Server exited successfully")
}

// loadSeed picks the initial store content: a seed file, the demo owners,
// or nothing.
func loadSeed(cfg *config.Config) (engine.Seed, error) {
	switch {
	case cfg.Seed.File != "":
		return engine.LoadSeed(cfg.Seed.File)
	case cfg.Seed.Demo:
		return engine.DefaultSeed(), nil
	default:
		return engine.Seed{}, nil
	}
}
