// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package config

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/cropwise/internal/breaker"
	"github.com/tomtom215/cropwise/internal/recommend/storage"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "0.0.0.0:8000" {
		t.Errorf("Server.Addr() = %q, want 0.0.0.0:8000", cfg.Server.Addr())
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
	if !cfg.Weather.Enabled {
		t.Error("Weather.Enabled should be true by default")
	}
	if cfg.Weather.Timeout != 10*time.Second {
		t.Errorf("Weather.Timeout = %v, want 10s", cfg.Weather.Timeout)
	}
	if cfg.Recommend.DefaultK != 5 || cfg.Recommend.MaxK != 50 {
		t.Errorf("Recommend limits = %d/%d, want 5/50", cfg.Recommend.DefaultK, cfg.Recommend.MaxK)
	}
	if cfg.Recommend.ModelURL != "" {
		t.Errorf("Recommend.ModelURL = %q, want empty", cfg.Recommend.ModelURL)
	}
	if cfg.NativeCache.Store != storage.BackendMemory {
		t.Errorf("NativeCache.Store = %q, want memory", cfg.NativeCache.Store)
	}
	if diff := cmp.Diff([]string{"*"}, cfg.Security.CORSOrigins); diff != "" {
		t.Errorf("CORSOrigins mismatch (-want +got):\n%s", diff)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "HTTP_PORT"},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "HTTP_PORT"},
		{name: "bad environment", mutate: func(c *Config) { c.Server.Environment = "prod" }, wantErr: "ENVIRONMENT"},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: "LOG_LEVEL"},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "LOG_FORMAT"},
		{name: "empty log format allowed", mutate: func(c *Config) { c.Logging.Format = "" }},
		{name: "weather timeout", mutate: func(c *Config) { c.Weather.Timeout = 0 }, wantErr: "WEATHER_TIMEOUT"},
		{name: "weather url scheme", mutate: func(c *Config) { c.Weather.BaseURL = "ftp://example.com" }, wantErr: "WEATHER_BASE_URL"},
		{name: "weather url query", mutate: func(c *Config) { c.Weather.BaseURL = "https://example.com/v1?x=1" }, wantErr: "WEATHER_BASE_URL"},
		{name: "weather disabled skips url", mutate: func(c *Config) {
			c.Weather.Enabled = false
			c.Weather.BaseURL = "not a url"
		}},
		{name: "breaker ratio", mutate: func(c *Config) { c.Weather.Breaker.FailureRatio = 1.5 }, wantErr: "FAILURE_RATIO"},
		{name: "model url", mutate: func(c *Config) { c.Recommend.ModelURL = "localhost:9000" }, wantErr: "MODEL_URL"},
		{name: "model url with path", mutate: func(c *Config) { c.Recommend.ModelURL = "http://model:9000/predict" }},
		{name: "blend weight", mutate: func(c *Config) { c.Recommend.ModelBlendWeight = 2 }, wantErr: "blend_weight"},
		{name: "max below default", mutate: func(c *Config) { c.Recommend.MaxK = 2 }, wantErr: "max_k"},
		{name: "unknown store", mutate: func(c *Config) { c.NativeCache.Store = "etcd" }, wantErr: "NATIVE_CACHE_STORE"},
		{name: "badger without dir", mutate: func(c *Config) {
			c.NativeCache.Store = storage.BackendBadger
			c.NativeCache.BadgerDir = ""
		}, wantErr: "NATIVE_CACHE_DIR"},
		{name: "redis without addr", mutate: func(c *Config) {
			c.NativeCache.Store = storage.BackendRedis
			c.NativeCache.RedisAddr = ""
		}, wantErr: "REDIS_ADDR"},
		{name: "refresh too often", mutate: func(c *Config) { c.NativeCache.RefreshInterval = time.Second }, wantErr: "NATIVE_CACHE_REFRESH_INTERVAL"},
		{name: "refresh disabled", mutate: func(c *Config) { c.NativeCache.RefreshInterval = 0 }},
		{name: "rate limit reqs", mutate: func(c *Config) { c.Security.RateLimitReqs = 0 }, wantErr: "RATE_LIMIT_REQS"},
		{name: "rate limit window", mutate: func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, wantErr: "RATE_LIMIT_WINDOW"},
		{name: "rate limit disabled skips bounds", mutate: func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}},
		{name: "admin username without hash", mutate: func(c *Config) { c.Security.AdminUsername = "ops" }, wantErr: "ADMIN_PASSWORD_HASH"},
		{name: "admin hash without username", mutate: func(c *Config) { c.Security.AdminPasswordHash = "$2a$12$abc" }, wantErr: "ADMIN_USERNAME"},
		{name: "short jwt secret", mutate: func(c *Config) { c.Security.JWTSecret = "too-short" }, wantErr: "JWT_SECRET"},
		{name: "jwt timeout", mutate: func(c *Config) {
			c.Security.JWTSecret = strings.Repeat("s", 32)
			c.Security.JWTTimeout = 0
		}, wantErr: "JWT_TIMEOUT"},
		{name: "regional without crops", mutate: func(c *Config) {
			c.Recommend.Regional = []RegionalConfig{{State: "Goa"}}
		}, wantErr: "recommend.regional[0]"},
		{name: "regional ok", mutate: func(c *Config) {
			c.Recommend.Regional = []RegionalConfig{{State: "Goa", Crops: []string{"cashew"}}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Conversions(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Recommend.DefaultK = 7
	cfg.Recommend.MaxK = 20
	cfg.Recommend.ModelURL = "http://model:9000/predict"
	cfg.Recommend.ModelBlendWeight = 0.4
	cfg.Recommend.NativeBoost = 0.2
	cfg.NativeCache.Store = storage.BackendRedis
	cfg.NativeCache.RedisAddr = "redis:6379"
	cfg.NativeCache.RedisDB = 2

	engine := cfg.Engine()
	if engine.Limits.DefaultK != 7 || engine.Limits.MaxK != 20 {
		t.Errorf("Engine limits = %+v", engine.Limits)
	}
	if engine.Model.BlendWeight != 0.4 || engine.Native.Boost != 0.2 {
		t.Errorf("Engine model/native = %+v / %+v", engine.Model, engine.Native)
	}
	if engine.Scores.IdealBase != 0.8 {
		t.Errorf("Engine scores should keep defaults, got IdealBase %v", engine.Scores.IdealBase)
	}

	m := cfg.Model()
	if m.URL != "http://model:9000/predict" || m.Timeout != 2*time.Second {
		t.Errorf("Model() = %+v", m)
	}
	if diff := cmp.Diff(breaker.DefaultSettings(), m.Breaker); diff != "" {
		t.Errorf("Model breaker mismatch (-want +got):\n%s", diff)
	}

	store := cfg.Store()
	if store.Backend != storage.BackendRedis || store.Redis.Addr != "redis:6379" || store.Redis.DB != 2 {
		t.Errorf("Store() = %+v", store)
	}
	if store.Redis.Namespace != "cropwise:" {
		t.Errorf("Store().Redis.Namespace = %q, want cropwise:", store.Redis.Namespace)
	}

	wc := cfg.WeatherClient()
	if wc.BaseURL != cfg.Weather.BaseURL || wc.CacheTTL != 15*time.Minute || wc.Burst != 10 {
		t.Errorf("WeatherClient() = %+v", wc)
	}

	if got := cfg.Advisor().WeatherTimeout; got != 10*time.Second {
		t.Errorf("Advisor().WeatherTimeout = %v, want 10s", got)
	}

	lc := cfg.LoggingSettings()
	if lc.Level != "info" || lc.Format != "json" || !lc.Timestamp {
		t.Errorf("LoggingSettings() = %+v", lc)
	}
}
