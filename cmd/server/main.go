// Command server runs the production-mix optimizer HTTP service: it loads
// configuration, wires logging/metrics/tracing, registers the built-in
// optimizers, and serves the HTTP API until an interrupt or termination
// signal is received.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"optiserve/internal/config"
	"optiserve/internal/httpapi"
	"optiserve/internal/logger"
	"optiserve/internal/metrics"
	"optiserve/internal/production"
	"optiserve/internal/telemetry"
	"optiserve/internal/vrp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	production.Configure(
		cfg.Optimizer.PlanValueClamp,
		cfg.Optimizer.FeasibilityTol,
		cfg.Optimizer.ReconciliationTol,
	)
	vrp.Configure(cfg.Optimizer.FeasibilityTol, cfg.Optimizer.MaxBranchAndBound)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		tp, err := telemetry.Init(ctx, telemetry.Config{
			Enabled:     cfg.Tracing.Enabled,
			Endpoint:    cfg.Tracing.Endpoint,
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
			Environment: cfg.App.Environment,
			SampleRate:  cfg.Tracing.SampleRate,
		})
		if err != nil {
			logger.Warn("failed to init telemetry", "error", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownTimeout)*time.Second)
				defer cancel()
				if err := tp.Shutdown(shutdownCtx); err != nil {
					logger.Warn("failed to shutdown telemetry", "error", err)
				}
			}()
		}
	}

	if cfg.Metrics.Enabled {
		m := metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
		m.SetServiceInfo(cfg.App.Version, cfg.App.Environment)
	}

	registry := production.NewRegistry()
	service := production.NewService(registry)

	router := httpapi.NewRouter(cfg, service)
	srv := httpapi.NewServer(cfg, router)

	logger.Info("optiserve starting",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"optimizers", service.ListOptimizers(),
	)

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server exited with error", "error", err)
	}
	logger.Info("optiserve stopped")
}
