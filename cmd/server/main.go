// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

// Package main is the Cropwise HTTP server.
//
// Startup order:
//
//  1. Configuration: defaults, optional config.yaml, environment (koanf)
//  2. Logging: zerolog, json or console
//  3. Reference data: district CSV and yield JSON, falling back to built-in
//     tables when absent
//  4. Native crop store: memory, badger or redis
//  5. Weather client and optional model endpoint, each behind a circuit
//     breaker
//  6. Supervisor tree: native cache warm-up/refresh and the HTTP server
//
// SIGINT and SIGTERM cancel the tree; in-flight requests get
// SHUTDOWN_TIMEOUT to drain.
//
//	HTTP_PORT=8000 DISTRICT_DATA_PATH=data/district_data.csv ./cropwise
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cropwise/internal/app"
	"github.com/tomtom215/cropwise/internal/config"
	"github.com/tomtom215/cropwise/internal/logging"
	"github.com/tomtom215/cropwise/internal/supervisor"
	"github.com/tomtom215/cropwise/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.LoggingSettings())

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("environment", cfg.Server.Environment).
		Str("native_store", cfg.NativeCache.Store).
		Msg("Starting Cropwise")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error().Err(err).Msg("Server stopped with error")
		stop()
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.Logger()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing native store")
		}
	}()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	tree.AddCacheService(services.NewNativeCacheService(a.Service, services.NativeCacheServiceConfig{
		WarmOnStartup:   cfg.NativeCache.WarmOnStartup,
		RefreshInterval: cfg.NativeCache.RefreshInterval,
	}, logger))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout).WithLogger(logger))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	err = tree.Serve(ctx)

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
