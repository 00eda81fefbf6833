package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/meteogrid/internal/config"
	"github.com/UnknownOlympus/meteogrid/internal/dashboard"
	"github.com/UnknownOlympus/meteogrid/internal/geocoding"
	"github.com/UnknownOlympus/meteogrid/internal/grid"
	"github.com/UnknownOlympus/meteogrid/internal/metrics"
	"github.com/UnknownOlympus/meteogrid/internal/models"
	"github.com/UnknownOlympus/meteogrid/internal/repository"
	"github.com/UnknownOlympus/meteogrid/internal/server"
	"github.com/UnknownOlympus/meteogrid/internal/service"
	"github.com/UnknownOlympus/meteogrid/internal/weather"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// providerRateBudget is the total number of provider requests per second shared by all workers.
const providerRateBudget = 50

func main() {
	// Cancelled on SIGINT/SIGTERM to trigger graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dtb, err := repository.NewDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	if err = repository.Migrate(ctx, dtb); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	repo := repository.NewRepository(dtb, logger)

	providerConfig := geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.ProviderType),
		APIKey:    cfg.APIKey,
		RateLimit: providerRateBudget / cfg.Workers,
		Logger:    logger,
	}
	if cfg.Location.Set {
		providerConfig.Location = &models.Coordinates{
			Latitude:  cfg.Location.Latitude,
			Longitude: cfg.Location.Longitude,
		}
	}

	provider, err := geocoding.NewProvider(providerConfig)
	if err != nil {
		log.Fatalf("Failed to create location provider: %v", err)
	}
	logger.InfoContext(ctx, "Location provider initialized", "type", cfg.ProviderType)

	projector := grid.NewProjector(grid.KMA)

	gridService := service.NewGridService(
		logger,
		repo,
		provider,
		cfg.ProviderType,
		appMetrics,
		projector,
		cfg.Workers,
		cfg.Interval,
	)

	weatherClient := weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.Timeout, cfg.Weather.RateLimit, logger)
	forecastService := service.NewForecastService(
		logger, projector, weatherClient, repo, appMetrics, clockwork.NewRealClock(),
	)

	srv := server.NewServer(fmt.Sprintf(":%d", cfg.Port), server.Deps{
		Projector: projector,
		Weather:   forecastService,
		Board:     dashboard.NewBoard(clockwork.NewRealClock()),
		Ready:     repo,
		Gatherer:  reg,
	}, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "HTTP server failed", "error", err)
			stop()
		}
	}()

	go gridService.Run(ctx)

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	<-ctx.Done()
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "HTTP server shutdown failed", "error", err)
	}

	logger.InfoContext(shutdownCtx, "Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	dropTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}

	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       slog.LevelWarn,
			ReplaceAttr: dropTime,
		}))
	default:
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       slog.LevelError,
			ReplaceAttr: dropTime,
		}))
		logger.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))

		return logger
	}
}
