// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/cropwise/internal/app"
	"github.com/tomtom215/cropwise/internal/config"
	"github.com/tomtom215/cropwise/internal/recommend/storage"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	noWeather  bool
	logLevel   string
	jsonOut    bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "cropctl",
		Short:         "Seasonal crop recommendations from the command line",
		Long:          "cropctl answers recommendation and native-crop queries with the same\nengine, data and native cache as the Cropwise server.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&g.configPath, "config", "", "config file (default: CONFIG_PATH or ./config.yaml)")
	f.BoolVar(&g.noWeather, "no-weather", false, "skip Open-Meteo and use seasonal fallback weather")
	f.StringVar(&g.logLevel, "log-level", "warn", "log level written to stderr")
	f.BoolVar(&g.jsonOut, "json", false, "print JSON instead of a table")

	root.AddCommand(
		newRecommendCmd(g),
		newNativeCmd(g),
		newSeasonsCmd(g),
		newDistrictsCmd(g),
		newCacheCmd(g),
		newAuthCmd(g),
	)
	return root
}

func (g *globalFlags) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.LoadFile(g.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if g.noWeather {
		cfg.Weather.Enabled = false
	}
	return cfg, nil
}

// openApp assembles the service. The caller closes the returned App.
func (g *globalFlags) openApp(ctx context.Context, cfg *config.Config, stderr io.Writer) (*app.App, error) {
	level, err := zerolog.ParseLevel(g.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()

	return app.New(ctx, cfg, logger)
}

// withApp runs fn against a freshly assembled service.
func (g *globalFlags) withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	return g.run(cmd, cfg, fn)
}

// errMemoryStore is returned by cache commands against the memory store,
// which lives only inside this process.
var errMemoryStore = errors.New("cache commands need a shared native store: set NATIVE_CACHE_STORE=redis (or badger with the server stopped)")

// withCacheApp is withApp for commands that change the native store. The
// memory store is refused. Badger is opened exclusively, so a running server
// makes the command fail on the directory lock; only redis is safe to change
// while the server runs.
func (g *globalFlags) withCacheApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	switch cfg.NativeCache.Store {
	case "", storage.BackendMemory:
		return errMemoryStore
	case storage.BackendBadger:
		fmt.Fprintf(cmd.ErrOrStderr(),
			"warning: badger store %s is locked while the server runs; stop the server first\n",
			cfg.NativeCache.BadgerDir)
	}
	return g.run(cmd, cfg, fn)
}

func (g *globalFlags) run(cmd *cobra.Command, cfg *config.Config, fn func(a *app.App) error) error {
	a, err := g.openApp(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	runErr := fn(a)
	if closeErr := a.Close(); runErr == nil && closeErr != nil {
		return fmt.Errorf("close native store: %w", closeErr)
	}
	return runErr
}
