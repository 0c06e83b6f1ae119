// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations, highest priority first.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cropwise/config.yaml",
	"/etc/cropwise/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from three layers, each overriding the
// previous: struct defaults, an optional YAML file and the environment.
func Load() (*Config, error) {
	return load(findConfigFile())
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file layer.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// HTTP_PORT -> server.port, NATIVE_CACHE_STORE -> native_cache.store
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when set from env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated string values of slice fields.
// YAML lists are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to config paths.
var envMappings = map[string]string{
	// Server
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Reference data
	"district_data_path": "data.districts_csv",
	"yield_data_path":    "data.yield_json",

	// Weather
	"weather_enabled":               "weather.enabled",
	"weather_base_url":              "weather.base_url",
	"weather_timeout":               "weather.timeout",
	"weather_cache_ttl":             "weather.cache_ttl",
	"weather_rate_limit":            "weather.rate_limit",
	"weather_burst":                 "weather.burst",
	"weather_breaker_max_requests":  "weather.breaker.max_requests",
	"weather_breaker_interval":      "weather.breaker.interval",
	"weather_breaker_timeout":       "weather.breaker.timeout",
	"weather_breaker_min_requests":  "weather.breaker.min_requests",
	"weather_breaker_failure_ratio": "weather.breaker.failure_ratio",

	// Recommendation
	"recommend_default_k":    "recommend.default_k",
	"recommend_max_k":        "recommend.max_k",
	"model_url":              "recommend.model_url",
	"model_timeout":          "recommend.model_timeout",
	"model_blend_weight":     "recommend.model_blend_weight",
	"recommend_native_boost": "recommend.native_boost",

	// Native crop cache
	"native_cache_store":            "native_cache.store",
	"native_cache_dir":              "native_cache.badger_dir",
	"native_cache_warm":             "native_cache.warm_on_startup",
	"native_cache_refresh_interval": "native_cache.refresh_interval",
	"redis_addr":                    "native_cache.redis_addr",
	"redis_password":                "native_cache.redis_password",
	"redis_db":                      "native_cache.redis_db",
	"redis_namespace":               "native_cache.redis_namespace",

	// Security
	"rate_limit_reqs":     "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"admin_username":      "security.admin_username",
	"admin_password_hash": "security.admin_password_hash",
	"jwt_secret":          "security.jwt_secret",
	"jwt_timeout":         "security.jwt_timeout",
}

// envTransformFunc maps an environment variable to its config path.
// Unmapped variables return "" and are skipped so unrelated environment
// does not leak into the config.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
