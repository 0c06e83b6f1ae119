// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package storage

import (
	"context"
	"fmt"
)

// Config selects and configures a NativeStore backend.
type Config struct {
	Backend   string
	BadgerDir string
	Redis     RedisConfig
}

// Open creates the configured store. The returned close function releases
// any underlying database or connection.
func Open(ctx context.Context, cfg Config) (NativeStore, func() error, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), func() error { return nil }, nil
	case BackendBadger:
		s, err := OpenBadgerStore(cfg.BadgerDir)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case BackendRedis:
		s, err := OpenRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown native store backend %q", cfg.Backend)
	}
}
