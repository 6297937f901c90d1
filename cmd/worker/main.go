package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/graminroute/hub/config"
	"github.com/graminroute/hub/internal/activities"
	"github.com/graminroute/hub/internal/database"
	"github.com/graminroute/hub/internal/workflows"
	"github.com/graminroute/hub/pkg/telemetry"
	pkgtemporal "github.com/graminroute/hub/pkg/temporal"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	serviceName := cfg.OTelServiceName
	if serviceName == "graminroute-hub-api" {
		serviceName = "graminroute-dispatch-worker"
	}

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		Endpoint:       cfg.OTelEndpoint,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(ctx); err != nil {
			slog.Error("failed to shutdown telemetry", slog.String("error", err.Error()))
		}
	}()

	db, err := database.New(database.Config{
		DatabaseURL: cfg.DatabaseURL,
		Debug:       cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	temporalClient, err := pkgtemporal.NewClient(pkgtemporal.ClientConfig{
		HostPort: cfg.TemporalHost,
	})
	if err != nil {
		return fmt.Errorf("failed to create Temporal client: %w", err)
	}
	defer temporalClient.Close()

	w, err := pkgtemporal.NewWorker(temporalClient, pkgtemporal.WorkerConfig{
		TaskQueue: cfg.TemporalTaskQueue,
	})
	if err != nil {
		return fmt.Errorf("failed to create Temporal worker: %w", err)
	}

	w.RegisterWorkflow(workflows.PoolDispatchWorkflow)
	w.RegisterActivity(activities.NewDispatchActivities(db))
	w.RegisterActivity(activities.SendDispatchNotice)
	w.RegisterActivity(activities.RecordPoolMetrics)

	slog.Info("starting dispatch worker",
		slog.String("temporal_host", cfg.TemporalHost),
		slog.String("task_queue", cfg.TemporalTaskQueue),
		slog.String("environment", cfg.Environment),
	)

	workerErr := make(chan error, 1)
	go func() {
		if err := w.Run(nil); err != nil {
			workerErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	slog.Info("dispatch worker is running, waiting for pools...")

	select {
	case err := <-workerErr:
		return fmt.Errorf("worker error: %w", err)
	case <-sigCh:
	}

	slog.Info("shutting down dispatch worker")
	w.Stop()

	return nil
}
