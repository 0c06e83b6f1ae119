// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*NativeCacheService)(nil)

type fakeWarmer struct {
	warms    atomic.Int32
	purges   atomic.Int32
	purgeErr error
	warmErr  error
}

func (f *fakeWarmer) WarmNative(ctx context.Context) (int, error) {
	f.warms.Add(1)
	if f.warmErr != nil {
		return 0, f.warmErr
	}
	return 3, ctx.Err()
}

func (f *fakeWarmer) PurgeNative(context.Context) error {
	f.purges.Add(1)
	return f.purgeErr
}

func runFor(t *testing.T, svc *NativeCacheService, d time.Duration) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return svc.Serve(ctx)
}

func TestNativeCacheService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cfg        NativeCacheServiceConfig
		warmer     *fakeWarmer
		wantWarms  func(int32) bool
		wantPurges func(int32) bool
	}{
		{
			name:       "warm only",
			cfg:        NativeCacheServiceConfig{WarmOnStartup: true},
			warmer:     &fakeWarmer{},
			wantWarms:  func(n int32) bool { return n == 1 },
			wantPurges: func(n int32) bool { return n == 0 },
		},
		{
			name:       "disabled",
			cfg:        NativeCacheServiceConfig{},
			warmer:     &fakeWarmer{},
			wantWarms:  func(n int32) bool { return n == 0 },
			wantPurges: func(n int32) bool { return n == 0 },
		},
		{
			name:       "refresh purges then warms",
			cfg:        NativeCacheServiceConfig{RefreshInterval: 20 * time.Millisecond},
			warmer:     &fakeWarmer{},
			wantWarms:  func(n int32) bool { return n >= 2 },
			wantPurges: func(n int32) bool { return n >= 2 },
		},
		{
			name:       "failed purge skips warm",
			cfg:        NativeCacheServiceConfig{RefreshInterval: 20 * time.Millisecond},
			warmer:     &fakeWarmer{purgeErr: errors.New("redis: connection refused")},
			wantWarms:  func(n int32) bool { return n == 0 },
			wantPurges: func(n int32) bool { return n >= 2 },
		},
		{
			name:       "failed warm keeps running",
			cfg:        NativeCacheServiceConfig{WarmOnStartup: true, RefreshInterval: 20 * time.Millisecond},
			warmer:     &fakeWarmer{warmErr: errors.New("boom")},
			wantWarms:  func(n int32) bool { return n >= 2 },
			wantPurges: func(n int32) bool { return n >= 1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewNativeCacheService(tt.warmer, tt.cfg, zerolog.Nop())
			err := runFor(t, svc, 150*time.Millisecond)
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("Serve() error = %v, want deadline exceeded", err)
			}
			if n := tt.warmer.warms.Load(); !tt.wantWarms(n) {
				t.Errorf("warms = %d", n)
			}
			if n := tt.warmer.purges.Load(); !tt.wantPurges(n) {
				t.Errorf("purges = %d", n)
			}
		})
	}
}

func TestNewNativeCacheService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewNativeCacheService(&fakeWarmer{}, NativeCacheServiceConfig{}, zerolog.Nop())
	if svc.config.RunTimeout != 5*time.Minute {
		t.Errorf("RunTimeout = %v, want 5m", svc.config.RunTimeout)
	}
	if svc.String() != "native-cache-service" {
		t.Errorf("String() = %q", svc.String())
	}
}
