// Command reservationd serves the reservation API and optionally runs the stale pending sweep.
//
// Configuration comes from the environment, a .env file in the working directory is loaded first:
//
//	HTTP_ADDR             listen address (default ":8080")
//	DB_ADAPTER            memory, pgx.pool, sql.db or sqlx.db (default "memory")
//	POSTGRES_DSN          primary database
//	POSTGRES_REPLICA_DSN  optional read replica for listings
//	CREATE_SCHEMA         create the tables on startup
//	SWEEP_SCHEDULE        cron schedule of the stale pending sweep, e.g. "@every 15m" (unset: no sweep)
//	OTEL_ENABLED          export traces and metrics over OTLP gRPC
//	CORS_ALLOWED_ORIGINS  comma separated origins
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

	"github.com/joho/godotenv"

	"github.com/staybook/reservation-engine/booking/httpapi"
	"github.com/staybook/reservation-engine/booking/shared/shell"
	"github.com/staybook/reservation-engine/booking/shared/shell/config"
	"github.com/staybook/reservation-engine/reservation/oteladapters"
)

const (
	instrumentationName = "github.com/staybook/reservation-engine"
	readHeaderTimeout   = 5 * time.Second
)

type observability struct {
	logger  shell.ContextualLogger
	metrics shell.MetricsCollector
	tracing shell.TracingCollector
}

func main() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(handler)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("loading .env failed", "error", err.Error())
	}

	if err := run(handler); err != nil {
		logger.Error("reservationd stopped", "error", err.Error())
		os.Exit(1)
	}
}

func run(handler slog.Handler) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs := observability{logger: oteladapters.NewSlogBridgeLoggerWithHandler(handler)}

	if s.OTelEnabled {
		providers, otelErr := config.NewObservabilityConfig(ctx, s.ServiceVersion)
		if otelErr != nil {
			return otelErr
		}

		defer func() {
			if shutdownErr := providers.Shutdown(); shutdownErr != nil {
				obs.logger.ErrorContext(context.Background(), "otel shutdown failed", "error", shutdownErr.Error())
			}
		}()

		obs.metrics = oteladapters.NewMetricsCollector(providers.MeterProvider.Meter(instrumentationName))
		obs.tracing = oteladapters.NewTracingCollector(providers.TracerProvider.Tracer(instrumentationName))
	}

	store, closeStore, err := openStore(ctx, s, obs)
	if err != nil {
		return err
	}
	defer closeStore()

	apiObservability := httpapi.Observability{Logger: obs.logger, Metrics: obs.metrics, Tracing: obs.tracing}

	handlers, err := httpapi.NewHandlers(store).Observe(apiObservability)
	if err != nil {
		return err
	}

	server, err := httpapi.NewServer(handlers,
		httpapi.WithContextualLogger(obs.logger),
		httpapi.WithAllowedOrigins(s.AllowedOrigins...),
	)
	if err != nil {
		return err
	}

	scheduler, err := newSweepScheduler(s, store, apiObservability)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              s.HTTPAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)

	go func() {
		obs.logger.InfoContext(ctx, "reservationd listening",
			"addr", s.HTTPAddr,
			"db_adapter", s.DBAdapter,
			"sweep_schedule", s.SweepSchedule,
			"otel_enabled", s.OTelEnabled,
		)

		if listenErr := httpServer.ListenAndServe(); listenErr != nil && !errors.Is(listenErr, http.ErrServerClosed) {
			serveErr <- listenErr
		}

		close(serveErr)
	}()

	if scheduler != nil {
		scheduler.Start()
	}

	select {
	case <-ctx.Done():
		obs.logger.InfoContext(context.Background(), "shutdown signal received")
	case err = <-serveErr:
		if err != nil {
			_ = stopScheduler(context.Background(), scheduler)
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()

	return errors.Join(
		httpServer.Shutdown(shutdownCtx),
		stopScheduler(shutdownCtx, scheduler),
	)
}
