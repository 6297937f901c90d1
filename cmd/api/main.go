package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/graminroute/hub/config"
	"github.com/graminroute/hub/internal/database"
	"github.com/graminroute/hub/internal/handlers"
	"github.com/graminroute/hub/internal/recommender"
	"github.com/graminroute/hub/internal/simulation"
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

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    cfg.OTelServiceName,
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

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if cfg.IsDevelopment() {
		if err := database.Seed(db); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}

	temporalClient, err := pkgtemporal.NewClient(pkgtemporal.ClientConfig{
		HostPort: cfg.TemporalHost,
	})
	if err != nil {
		return fmt.Errorf("failed to create Temporal client: %w", err)
	}
	defer temporalClient.Close()

	oracle := recommender.NewClient(cfg.RecommenderURL)

	orderHandler := handlers.NewOrderHandler(db)
	retailerHandler := handlers.NewRetailerHandler(db, oracle)
	poolHandler := handlers.NewPoolHandler(db, temporalClient, cfg.TemporalTaskQueue)
	simulationHandler := handlers.NewSimulationHandler(simulation.LoadConfig())

	e := echo.New()
	e.HideBanner = true
	e.Use(otelecho.Middleware(cfg.OTelServiceName))
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	api.POST("/orders", orderHandler.Create)
	api.GET("/orders", orderHandler.List)
	api.GET("/orders/:id", orderHandler.Get)

	api.GET("/retailers", retailerHandler.List)
	api.GET("/retailers/:id", retailerHandler.Get)
	api.GET("/retailers/:id/recommendation", retailerHandler.Recommendation)

	api.POST("/pools/build", poolHandler.Build)
	api.GET("/pools", poolHandler.List)
	api.GET("/pools/:id", poolHandler.Get)
	api.POST("/pools/:id/dispatch", poolHandler.Dispatch)

	api.POST("/simulation/run", simulationHandler.Run)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting hub API",
			slog.String("port", cfg.Port),
			slog.String("environment", cfg.Environment),
		)
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-sigCh:
	}

	slog.Info("shutting down hub API")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
