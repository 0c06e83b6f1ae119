// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/cropwise/internal/auth"
	"github.com/tomtom215/cropwise/internal/recommend/storage"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

var validStores = map[string]bool{
	storage.BackendMemory: true,
	storage.BackendBadger: true,
	storage.BackendRedis:  true,
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateWeather(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateNativeCache(); err != nil {
		return err
	}
	return c.validateSecurity()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateWeather() error {
	w := &c.Weather
	if w.Timeout <= 0 {
		return fmt.Errorf("WEATHER_TIMEOUT must be positive, got %v", w.Timeout)
	}
	if !w.Enabled {
		return nil
	}
	if err := validateHTTPURL(w.BaseURL, "WEATHER_BASE_URL"); err != nil {
		return err
	}
	if w.RateLimit < 0 {
		return fmt.Errorf("WEATHER_RATE_LIMIT must be non-negative, got %v", w.RateLimit)
	}
	if w.Breaker.FailureRatio <= 0 || w.Breaker.FailureRatio > 1 {
		return fmt.Errorf("WEATHER_BREAKER_FAILURE_RATIO must be in (0, 1], got %v", w.Breaker.FailureRatio)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.ModelURL != "" {
		if err := validateHTTPURL(c.Recommend.ModelURL, "MODEL_URL"); err != nil {
			return err
		}
	}
	if err := c.Engine().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	for i, r := range c.Recommend.Regional {
		if strings.TrimSpace(r.State) == "" || len(r.Crops) == 0 {
			return fmt.Errorf("recommend.regional[%d] needs a state and at least one crop", i)
		}
	}
	return nil
}

func (c *Config) validateNativeCache() error {
	nc := &c.NativeCache
	if !validStores[nc.Store] {
		return fmt.Errorf("NATIVE_CACHE_STORE must be one of: memory, badger, redis")
	}
	if nc.RefreshInterval != 0 && nc.RefreshInterval < time.Minute {
		return fmt.Errorf("NATIVE_CACHE_REFRESH_INTERVAL must be 0 or at least 1m, got %v", nc.RefreshInterval)
	}
	switch nc.Store {
	case storage.BackendBadger:
		if nc.BadgerDir == "" {
			return fmt.Errorf("NATIVE_CACHE_DIR is required when NATIVE_CACHE_STORE=badger")
		}
	case storage.BackendRedis:
		if nc.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when NATIVE_CACHE_STORE=redis")
		}
		if nc.RedisDB < 0 {
			return fmt.Errorf("REDIS_DB must be non-negative, got %d", nc.RedisDB)
		}
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if err := c.validateAdmin(); err != nil {
		return err
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQS must be between 1 and 100000, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow < time.Second {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateAdmin() error {
	s := &c.Security
	if (s.AdminUsername == "") != (s.AdminPasswordHash == "") {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD_HASH must be set together")
	}
	if s.JWTSecret != "" && len(s.JWTSecret) < auth.MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", auth.MinJWTSecretLength)
	}
	if s.JWTTimeout <= 0 {
		return fmt.Errorf("JWT_TIMEOUT must be positive, got %v", s.JWTTimeout)
	}
	return nil
}

// validateHTTPURL checks for an http(s) URL with a host and no query string.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}
