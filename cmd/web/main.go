// Command web serves the HTTP API over the processing pipeline, used as
// the backend for GUI front-ends and for operational triggering.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nsecli/internal/config"
	"nsecli/internal/fetch"
	"nsecli/internal/infrastructure"
	"nsecli/internal/operations"
	transport "nsecli/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if _, err := infrastructure.InitializeLogger(cfg.Logging); err != nil {
		slog.Error("Failed to initialize logger", slog.String("error", err.Error()))
		os.Exit(1)
	}

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create data directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	runner := operations.NewRunner(paths, fetch.NewClient(cfg.Fetch), operations.NewMetrics(registry))
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	server := transport.NewServer(cfg.Server, paths, runner, metricsHandler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down")
		if err := server.Shutdown(context.Background()); err != nil {
			slog.Error("Shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}
