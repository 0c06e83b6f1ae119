// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

// General API information for swag. Regenerate the docs package with:
//
//	swag init -g cmd/server/docs.go -o docs --parseInternal
//
// @title Cropwise API
// @version 1.0
// @description Seasonal crop recommendations for Indian districts.
// @description
// @description Recommendations combine live weather, agronomic suitability rules and
// @description historical district yield. When the weather API or the model endpoint is
// @description unavailable the service keeps answering from fallbacks and /health reports degraded.
// @description
// @description ## Authentication
// @description
// @description Only the native cache admin routes require credentials: HTTP Basic with
// @description ADMIN_USERNAME / ADMIN_PASSWORD_HASH, or a bearer token signed with JWT_SECRET
// @description (issue one with `cropctl auth token`). Without either the routes answer 403.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address. Rejections answer 429.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "VALIDATION_ERROR",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-06-18T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/cropwise/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.basic BasicAuth
// @description Admin username and password (bcrypt hash configured server side).
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Bearer <token>" issued by `cropctl auth token`.
//
// @tag.name Recommendations
// @tag.description Crop recommendations and district native crops
//
// @tag.name Reference
// @tag.description Seasons, states and districts known to the service
//
// @tag.name Core
// @tag.description Health and status
//
// @tag.name Admin
// @tag.description Native cache maintenance, admin credentials required

package main
