// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

/*
Package api exposes the recommendation service over HTTP.

Routes are served by a chi router under /api/v1:

	POST   /api/v1/predict                      top-k crop recommendations
	POST   /api/v1/native                       native crops of a district
	GET    /api/v1/native?state=&district=      same, from query parameters
	DELETE /api/v1/native/cache                 drop every memoized native list (admin)
	DELETE /api/v1/native/cache/{state}/{district}?season=            (admin)
	GET    /api/v1/seasons                      season table and current season
	GET    /api/v1/states                       known states
	GET    /api/v1/districts/{state}            districts of a state
	GET    /api/v1/health                       data-source availability
	GET    /metrics                             Prometheus exposition
	GET    /swagger/*                           Swagger UI and /swagger/doc.json

Every JSON response uses the models.APIResponse envelope. Request validation
failures answer 400 with code VALIDATION_ERROR; unknown routes answer 404
NOT_FOUND and wrong methods 405 METHOD_NOT_ALLOWED.

Admin routes go through ChiMiddleware.RequireAdmin: HTTP Basic or a bearer
JWT (see package auth). Missing or wrong credentials answer 401
UNAUTHORIZED; a server started without admin credentials answers 403
ADMIN_DISABLED.

Middleware order: request ID, real IP, panic recovery, access log, CORS,
gzip compression, then per-route rate limiting, security headers and
Prometheus instrumentation.
*/
package api
