// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tomtom215/cropwise/docs" // registers the OpenAPI document served at /swagger/doc.json
	"github.com/tomtom215/cropwise/internal/middleware"
)

// compressionLevel is the gzip level for JSON responses.
const compressionLevel = 5

// NewRouter builds the chi router for every endpoint. A nil mw uses
// DefaultChiMiddlewareConfig.
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(mw.CORS()) // global so OPTIONS preflight is answered
	r.Use(chimiddleware.Compress(compressionLevel, "application/json"))

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(mw.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Get("/", h.Health)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Post("/predict", h.Predict)

		r.Route("/native", func(r chi.Router) {
			r.Get("/", h.NativeGet)
			r.Post("/", h.NativePost)
			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAdmin())
				r.Delete("/cache", h.PurgeNativeCache)
				r.Delete("/cache/{state}/{district}", h.InvalidateNativeCache)
			})
		})

		r.Get("/seasons", h.Seasons)
		r.Get("/states", h.States)
		r.Get("/districts/{state}", h.Districts)
	})

	return r
}
