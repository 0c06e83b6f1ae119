// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

// Package metrics exposes the Prometheus instruments used across Cropwise.
// Instruments are registered on the default registry at init and served by
// promhttp on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crop_recommendations_total",
			Help: "Total number of recommendation requests served",
		},
		[]string{"season", "native_emphasis"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crop_recommendation_duration_seconds",
			Help:    "End-to-end recommendation latency including the weather fetch",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 15},
		},
	)

	// Weather Metrics
	WeatherFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_fetch_total",
			Help: "Weather lookups by outcome",
		},
		[]string{"outcome"}, // "live", "cached", "fallback"
	)

	WeatherFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "weather_fetch_duration_seconds",
			Help:    "Duration of upstream weather API calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	// Native Crop Inference Metrics
	NativeCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "native_crop_cache_requests_total",
			Help: "Native crop cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss", "shared"
	)

	NativeInferenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "native_crop_inference_duration_seconds",
			Help:    "Time spent computing a native crop list on cache miss",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Model Metrics
	ModelPredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crop_model_predictions_total",
			Help: "Statistical model calls by outcome",
		},
		[]string{"outcome"}, // "success", "unavailable", "error"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records one served recommendation request.
func RecordRecommendation(season string, nativeEmphasis bool, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(season, strconv.FormatBool(nativeEmphasis)).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordWeatherFetch records the outcome of a weather lookup. A zero
// duration means no upstream call was made.
func RecordWeatherFetch(outcome string, duration time.Duration) {
	WeatherFetchTotal.WithLabelValues(outcome).Inc()
	if duration > 0 {
		WeatherFetchDuration.Observe(duration.Seconds())
	}
}

// RecordNativeCache records a native crop cache lookup result.
func RecordNativeCache(result string) {
	NativeCacheRequests.WithLabelValues(result).Inc()
}

// RecordNativeInference records the duration of a native crop computation.
func RecordNativeInference(duration time.Duration) {
	NativeInferenceDuration.Observe(duration.Seconds())
}

// RecordModelPrediction records a statistical model call outcome.
func RecordModelPrediction(outcome string) {
	ModelPredictionsTotal.WithLabelValues(outcome).Inc()
}
