// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

// Package weather fetches live conditions from the Open-Meteo forecast API.
//
// Every call goes through a rate limiter, a circuit breaker and a short
// per-coordinate cache. Failures are returned wrapped in
// ErrWeatherUnavailable; substituting a synthetic snapshot is the
// caller's job.
package weather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cropwise/internal/breaker"
	"github.com/tomtom215/cropwise/internal/cache"
	"github.com/tomtom215/cropwise/internal/logging"
	"github.com/tomtom215/cropwise/internal/metrics"
	"github.com/tomtom215/cropwise/internal/models"
)

// ErrWeatherUnavailable wraps every fetch failure.
var ErrWeatherUnavailable = errors.New("weather unavailable")

// DefaultBaseURL is the public Open-Meteo forecast endpoint.
const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// Config configures a Client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	CacheTTL  time.Duration
	RateLimit float64 // requests per second; 0 disables limiting
	Burst     int
	Breaker   breaker.Settings
}

// DefaultConfig returns the production client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   10 * time.Second,
		CacheTTL:  15 * time.Minute,
		RateLimit: 5,
		Burst:     10,
		Breaker:   breaker.DefaultSettings(),
	}
}

// Client fetches weather snapshots from Open-Meteo.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	breaker    *breaker.Breaker
	cache      *cache.TTL[models.WeatherSnapshot]
	now        func() time.Time
}

// openMeteoResponse is the subset of the forecast payload we read.
type openMeteoResponse struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		Humidity      float64 `json:"relative_humidity_2m"`
		Precipitation float64 `json:"precipitation"`
		WindSpeed     float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily struct {
		PrecipitationSum []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

type openMeteoError struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// NewClient creates an Open-Meteo client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		limiter:    limiter,
		breaker:    breaker.New("open-meteo", cfg.Breaker),
		cache:      cache.NewTTL[models.WeatherSnapshot](cfg.CacheTTL, 1024),
		now:        time.Now,
	}
}

// Name returns the provider name for logging and health reports.
func (c *Client) Name() string {
	return "open-meteo"
}

// BreakerState exposes the circuit state for health reporting.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

// Fetch returns the current weather at (lat, lon) with the trailing-week
// rainfall accumulation.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error) {
	key := cacheKey(lat, lon)
	if snap, ok := c.cache.Get(key); ok {
		metrics.RecordWeatherFetch("cached", 0)
		return snap, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("%w: rate limiter: %w", ErrWeatherUnavailable, err)
	}

	start := c.now()
	snap, err := breaker.Do(c.breaker, func() (models.WeatherSnapshot, error) {
		return c.query(ctx, lat, lon)
	})
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("Weather query failed")
		return models.WeatherSnapshot{}, fmt.Errorf("%w: %w", ErrWeatherUnavailable, err)
	}

	metrics.RecordWeatherFetch("live", c.now().Sub(start))
	c.cache.Set(key, snap)
	return snap, nil
}

func (c *Client) query(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("current", "temperature_2m,relative_humidity_2m,precipitation,wind_speed_10m")
	params.Set("daily", "precipitation_sum")
	params.Set("timezone", "Asia/Kolkata")
	params.Set("past_days", "7")
	params.Set("forecast_days", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("failed to query Open-Meteo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp openMeteoError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil && errResp.Reason != "" {
			return models.WeatherSnapshot{}, fmt.Errorf("open-meteo error (%d): %s", resp.StatusCode, errResp.Reason)
		}
		return models.WeatherSnapshot{}, fmt.Errorf("open-meteo returned status %d", resp.StatusCode)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("failed to decode Open-Meteo response: %w", err)
	}

	return c.convert(&payload), nil
}

func (c *Client) convert(p *openMeteoResponse) models.WeatherSnapshot {
	weekly := 0.0
	for _, v := range p.Daily.PrecipitationSum {
		if v != nil {
			weekly += *v
		}
	}
	weekly = round1(weekly)

	return models.WeatherSnapshot{
		Temperature:          round1(p.Current.Temperature),
		Humidity:             p.Current.Humidity,
		Rainfall:             weekly,
		WindSpeed:            round1(p.Current.WindSpeed),
		PrecipitationCurrent: p.Current.Precipitation,
		PrecipitationWeek:    weekly,
		FetchedAt:            c.now(),
		Source:               models.WeatherSourceLive,
	}
}

// cacheKey rounds to two decimals (about 1 km), finer than Open-Meteo's grid.
func cacheKey(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', 2, 64) + "," + strconv.FormatFloat(lon, 'f', 2, 64)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
