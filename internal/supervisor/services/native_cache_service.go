// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// NativeCacheWarmer is satisfied by *advisor.Service.
type NativeCacheWarmer interface {
	WarmNative(ctx context.Context) (int, error)
	PurgeNative(ctx context.Context) error
}

// NativeCacheServiceConfig controls warm-up and refresh.
type NativeCacheServiceConfig struct {
	// WarmOnStartup fills the cache once when the service starts.
	WarmOnStartup bool
	// RefreshInterval purges and rewarms the cache. Zero disables it.
	RefreshInterval time.Duration
	// RunTimeout bounds one warm or refresh cycle.
	RunTimeout time.Duration
}

// NativeCacheService keeps the native-crop cache populated so the first
// request for a district does not pay for inference.
type NativeCacheService struct {
	warmer NativeCacheWarmer
	config NativeCacheServiceConfig
	logger zerolog.Logger
	name   string
}

// NewNativeCacheService creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewNativeCacheService(warmer NativeCacheWarmer, cfg NativeCacheServiceConfig, logger zerolog.Logger) *NativeCacheService {
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 5 * time.Minute
	}
	return &NativeCacheService{
		warmer: warmer,
		config: cfg,
		logger: logger.With().Str("service", "native-cache").Logger(),
		name:   "native-cache-service",
	}
}

// Serve warms the cache, then refreshes it on every tick until ctx is
// canceled. Failed cycles are logged and retried on the next tick.
func (s *NativeCacheService) Serve(ctx context.Context) error {
	if s.config.WarmOnStartup {
		s.warm(ctx)
	}

	if s.config.RefreshInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *NativeCacheService) warm(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.warmer.WarmNative(runCtx)
	if err != nil {
		s.logger.Warn().Err(err).Int("districts", n).Msg("native cache warm-up incomplete")
		return
	}
	s.logger.Info().Int("districts", n).Dur("duration", time.Since(start)).Msg("native cache warmed")
}

func (s *NativeCacheService) refresh(ctx context.Context) {
	if err := s.warmer.PurgeNative(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("native cache purge failed")
		return
	}
	s.warm(ctx)
}

func (s *NativeCacheService) String() string {
	return s.name
}
