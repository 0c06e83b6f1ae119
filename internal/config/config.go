// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/cropwise/internal/advisor"
	"github.com/tomtom215/cropwise/internal/auth"
	"github.com/tomtom215/cropwise/internal/breaker"
	"github.com/tomtom215/cropwise/internal/knowledge"
	"github.com/tomtom215/cropwise/internal/logging"
	"github.com/tomtom215/cropwise/internal/model"
	"github.com/tomtom215/cropwise/internal/recommend"
	"github.com/tomtom215/cropwise/internal/recommend/storage"
	"github.com/tomtom215/cropwise/internal/weather"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Logging     LoggingConfig     `koanf:"logging"`
	Data        DataConfig        `koanf:"data"`
	Weather     WeatherConfig     `koanf:"weather"`
	Recommend   RecommendConfig   `koanf:"recommend"`
	NativeCache NativeCacheConfig `koanf:"native_cache"`
	Security    SecurityConfig    `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging or production
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller adds file and line to each entry.
	Caller bool `koanf:"caller"`
}

// DataConfig locates the reference data files. Both are optional: a
// missing file leaves the built-in defaults in place.
type DataConfig struct {
	DistrictsCSV string `koanf:"districts_csv"`
	YieldJSON    string `koanf:"yield_json"`
}

// WeatherConfig configures the Open-Meteo client.
type WeatherConfig struct {
	Enabled   bool          `koanf:"enabled"`
	BaseURL   string        `koanf:"base_url"`
	Timeout   time.Duration `koanf:"timeout"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`
	RateLimit float64       `koanf:"rate_limit"`
	Burst     int           `koanf:"burst"`
	Breaker   BreakerConfig `koanf:"breaker"`
}

// BreakerConfig mirrors breaker.Settings.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// RecommendConfig holds scoring and model settings.
type RecommendConfig struct {
	DefaultK         int           `koanf:"default_k"`
	MaxK             int           `koanf:"max_k"`
	ModelURL         string        `koanf:"model_url"`
	ModelTimeout     time.Duration `koanf:"model_timeout"`
	ModelBlendWeight float64       `koanf:"model_blend_weight"`
	NativeBoost      float64       `koanf:"native_boost"`

	// Regional adds state/crop affinities after the built-in table. Set in
	// the config file only.
	Regional []RegionalConfig `koanf:"regional"`
}

// RegionalConfig is one extra regional affinity.
type RegionalConfig struct {
	State string   `koanf:"state"`
	Crops []string `koanf:"crops"`
}

// NativeCacheConfig selects the native-crop store.
type NativeCacheConfig struct {
	// Store is memory, badger or redis.
	Store          string `koanf:"store"`
	BadgerDir      string `koanf:"badger_dir"`
	RedisAddr      string `koanf:"redis_addr"`
	RedisPassword  string `koanf:"redis_password"`
	RedisDB        int    `koanf:"redis_db"`
	RedisNamespace string `koanf:"redis_namespace"`

	// WarmOnStartup computes the all-season native list of every known
	// district when the server starts.
	WarmOnStartup bool `koanf:"warm_on_startup"`
	// RefreshInterval purges and rewarms the cache periodically. Zero
	// disables the refresh.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// SecurityConfig holds HTTP hardening settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`

	// Admin credentials for the native cache endpoints. With none set the
	// endpoints refuse every request.
	AdminUsername     string        `koanf:"admin_username"`
	AdminPasswordHash string        `koanf:"admin_password_hash"`
	JWTSecret         string        `koanf:"jwt_secret"`
	JWTTimeout        time.Duration `koanf:"jwt_timeout"`
}

// defaultConfig returns a Config with every default applied. Defaults are
// loaded first and then overridden by the config file and environment.
func defaultConfig() *Config {
	bs := breaker.DefaultSettings()
	rc := recommend.DefaultConfig()

	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Data: DataConfig{
			DistrictsCSV: "data/district_data.csv",
			YieldJSON:    "data/crop_yield_features.json",
		},
		Weather: WeatherConfig{
			Enabled:   true,
			BaseURL:   weather.DefaultBaseURL,
			Timeout:   10 * time.Second,
			CacheTTL:  15 * time.Minute,
			RateLimit: 5,
			Burst:     10,
			Breaker: BreakerConfig{
				MaxRequests:  bs.MaxRequests,
				Interval:     bs.Interval,
				Timeout:      bs.Timeout,
				MinRequests:  bs.MinRequests,
				FailureRatio: bs.FailureRatio,
			},
		},
		Recommend: RecommendConfig{
			DefaultK:         rc.Limits.DefaultK,
			MaxK:             rc.Limits.MaxK,
			ModelURL:         "",
			ModelTimeout:     rc.Model.Timeout,
			ModelBlendWeight: rc.Model.BlendWeight,
			NativeBoost:      rc.Native.Boost,
		},
		NativeCache: NativeCacheConfig{
			Store:           storage.BackendMemory,
			BadgerDir:       "/data/native-cache",
			RedisAddr:       "localhost:6379",
			RedisNamespace:  "cropwise:",
			WarmOnStartup:   true,
			RefreshInterval: 24 * time.Hour,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			JWTTimeout:        auth.DefaultJWTTimeout,
		},
	}
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingSettings converts the section into logging.Config.
func (c *Config) LoggingSettings() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Logging.Level
	lc.Format = c.Logging.Format
	lc.Caller = c.Logging.Caller
	return lc
}

// BreakerSettings converts the section into breaker.Settings.
func (b *BreakerConfig) BreakerSettings() breaker.Settings {
	return breaker.Settings{
		MaxRequests:  b.MaxRequests,
		Interval:     b.Interval,
		Timeout:      b.Timeout,
		MinRequests:  b.MinRequests,
		FailureRatio: b.FailureRatio,
	}
}

// WeatherClient converts the section into weather.Config.
func (c *Config) WeatherClient() weather.Config {
	return weather.Config{
		BaseURL:   c.Weather.BaseURL,
		Timeout:   c.Weather.Timeout,
		CacheTTL:  c.Weather.CacheTTL,
		RateLimit: c.Weather.RateLimit,
		Burst:     c.Weather.Burst,
		Breaker:   c.Weather.Breaker.BreakerSettings(),
	}
}

// Knowledge returns the built-in knowledge base extended with the
// configured regional affinities.
func (c *Config) Knowledge() *knowledge.Base {
	if len(c.Recommend.Regional) == 0 {
		return knowledge.Default()
	}
	extra := make([]knowledge.RegionalAffinity, len(c.Recommend.Regional))
	for i, r := range c.Recommend.Regional {
		extra[i] = knowledge.RegionalAffinity{State: r.State, Crops: r.Crops}
	}
	return knowledge.Default().WithRegional(extra)
}

// Auth converts the admin credentials into auth.Config.
func (c *Config) Auth() auth.Config {
	return auth.Config{
		AdminUsername:     c.Security.AdminUsername,
		AdminPasswordHash: c.Security.AdminPasswordHash,
		JWTSecret:         c.Security.JWTSecret,
		JWTTimeout:        c.Security.JWTTimeout,
	}
}

// Advisor converts settings into advisor.Config.
func (c *Config) Advisor() advisor.Config {
	return advisor.Config{WeatherTimeout: c.Weather.Timeout}
}

// Engine converts the recommend section into recommend.Config. Score
// weights keep their defaults.
func (c *Config) Engine() *recommend.Config {
	rc := recommend.DefaultConfig()
	rc.Limits.DefaultK = c.Recommend.DefaultK
	rc.Limits.MaxK = c.Recommend.MaxK
	rc.Model.Timeout = c.Recommend.ModelTimeout
	rc.Model.BlendWeight = c.Recommend.ModelBlendWeight
	rc.Native.Boost = c.Recommend.NativeBoost
	return rc
}

// Model converts the recommend section into model.Config. The model
// endpoint reuses the weather breaker policy.
func (c *Config) Model() model.Config {
	return model.Config{
		URL:     c.Recommend.ModelURL,
		Timeout: c.Recommend.ModelTimeout,
		Breaker: c.Weather.Breaker.BreakerSettings(),
	}
}

// Store converts the native_cache section into storage.Config.
func (c *Config) Store() storage.Config {
	return storage.Config{
		Backend:   c.NativeCache.Store,
		BadgerDir: c.NativeCache.BadgerDir,
		Redis: storage.RedisConfig{
			Addr:      c.NativeCache.RedisAddr,
			Password:  c.NativeCache.RedisPassword,
			DB:        c.NativeCache.RedisDB,
			Namespace: c.NativeCache.RedisNamespace,
		},
	}
}
