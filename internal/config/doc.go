// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

/*
Package config loads and validates the service configuration.

Configuration is layered with koanf. Each layer overrides the previous one:

 1. Struct defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, then config.yaml, config.yml,
    /etc/cropwise/config.yaml and /etc/cropwise/config.yml
 3. Environment variables listed in envMappings

Only mapped environment variables are read. Comma-separated values are split
for list fields such as CORS_ORIGINS.

# Sections

  - server: listen address, timeouts, environment
  - logging: level, format, caller
  - data: district CSV and yield statistics JSON paths
  - weather: Open-Meteo URL, timeout, cache TTL, rate limit, circuit breaker
  - recommend: result limits, model endpoint and blend weight, native boost
  - native_cache: memory, badger or redis store for native-crop lists
  - security: per-IP rate limit and CORS origins

The section types convert into the settings of the packages they configure,
for example Config.WeatherClient and Config.Store.

# Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	logging.Init(cfg.LoggingSettings())
*/
package config
