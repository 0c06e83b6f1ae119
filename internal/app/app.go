// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

// Package app assembles the recommendation service from configuration. It is
// shared by the HTTP server and the operator CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cropwise/internal/advisor"
	"github.com/tomtom215/cropwise/internal/api"
	"github.com/tomtom215/cropwise/internal/auth"
	"github.com/tomtom215/cropwise/internal/config"
	"github.com/tomtom215/cropwise/internal/district"
	"github.com/tomtom215/cropwise/internal/model"
	"github.com/tomtom215/cropwise/internal/recommend"
	"github.com/tomtom215/cropwise/internal/recommend/storage"
	"github.com/tomtom215/cropwise/internal/weather"
	"github.com/tomtom215/cropwise/internal/yield"
)

// App holds the assembled service and the resources it owns.
type App struct {
	Service *advisor.Service

	cfg     *config.Config
	admin   *auth.Admin
	tokens  *auth.JWTAuthenticator
	closers []func() error
	logger  zerolog.Logger
}

// New loads reference data, opens the native store and wires the service.
// Missing or unreadable reference data degrades to built-in tables; only
// store, model and admin credential errors are fatal.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	a := &App{cfg: cfg, logger: logger}

	admin, tokens, err := auth.New(cfg.Auth())
	if err != nil {
		return nil, fmt.Errorf("admin auth: %w", err)
	}
	a.admin, a.tokens = admin, tokens

	repo := loadDistricts(cfg.Data.DistrictsCSV, logger)
	yields := loadYields(cfg.Data.YieldJSON, logger)

	store, closeStore, err := storage.Open(ctx, cfg.Store())
	if err != nil {
		return nil, fmt.Errorf("open native store: %w", err)
	}
	a.closers = append(a.closers, closeStore)

	kb := cfg.Knowledge()
	engineCfg := cfg.Engine()
	engine, err := recommend.NewEngine(engineCfg, kb, logger)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("create engine: %w", err)
	}
	engine.SetDistrictLookup(repo)
	engine.SetYieldSource(yields)

	var predictor *model.Predictor
	if cfg.Recommend.ModelURL != "" {
		predictor, err = model.NewPredictor(cfg.Model())
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("create model predictor: %w", err)
		}
		engine.SetModel(predictor)
		logger.Info().Str("url", cfg.Recommend.ModelURL).Msg("crop model endpoint configured")
	}

	deps := advisor.Deps{
		Engine:      engine,
		Native:      recommend.NewNativeInferer(engineCfg, kb, repo, yields, store, logger),
		Directory:   repo,
		YieldStates: yields.States,
	}
	if predictor != nil {
		deps.Model = predictor
	}
	if cfg.Weather.Enabled {
		deps.Weather = weather.NewClient(cfg.WeatherClient())
	} else {
		logger.Info().Msg("weather disabled, using seasonal fallback snapshots")
	}

	svc, err := advisor.NewService(cfg.Advisor(), deps, logger)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("create advisor: %w", err)
	}
	a.Service = svc

	logger.Info().
		Int("districts", repo.Len()).
		Int("yield_states", len(yields.States())).
		Str("native_store", store.Name()).
		Bool("model", predictor != nil).
		Bool("weather", cfg.Weather.Enabled).
		Strs("admin_auth", admin.Methods()).
		Int("regional_overrides", len(cfg.Recommend.Regional)).
		Msg("recommendation service ready")
	if !admin.Enabled() {
		logger.Warn().Msg("no admin credentials configured, native cache admin routes answer 403")
	}

	return a, nil
}

// Router returns the HTTP handler for the service.
func (a *App) Router() http.Handler {
	sec := a.cfg.Security
	mw := api.NewChiMiddlewareFromSecurity(sec.CORSOrigins, sec.RateLimitReqs, sec.RateLimitWindow, sec.RateLimitDisabled)
	return api.NewRouter(api.NewHandler(a.Service), mw.WithAdmin(a.admin))
}

// TokenIssuer returns the JWT authenticator, or nil without JWT_SECRET.
func (a *App) TokenIssuer() *auth.JWTAuthenticator {
	return a.tokens
}

// Close releases the native store.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func loadDistricts(path string, logger zerolog.Logger) *district.Repository {
	repo, err := district.LoadCSV(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("district metadata unavailable, using built-in tables")
		return district.NewRepository(nil)
	}
	return repo
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func loadYields(path string, logger zerolog.Logger) *yield.Provider {
	p, err := yield.LoadFile(path)
	if err != nil {
		event := logger.Warn()
		if errors.Is(err, yield.ErrNoData) {
			event = logger.Info()
		}
		event.Err(err).Str("path", path).Msg("yield statistics unavailable, scoring without yield signal")
		return yield.New(nil)
	}
	return p
}
