// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/cropwise/internal/auth"
	"github.com/tomtom215/cropwise/internal/logging"
)

// RequireAdmin rejects requests that do not authenticate as the admin.
// Missing or wrong credentials answer 401 with a WWW-Authenticate challenge
// per enabled method; a server without admin credentials answers 403.
func (m *ChiMiddleware) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := m.admin.Authenticate(r)
			switch {
			case err == nil:
			case errors.Is(err, auth.ErrNotConfigured):
				respondError(w, r, http.StatusForbidden, ErrCodeAdminDisabled,
					"Admin endpoints are disabled, configure ADMIN_USERNAME or JWT_SECRET", nil)
				return
			case errors.Is(err, auth.ErrNoCredentials):
				unauthorized(w, r, m.admin, nil)
				return
			default:
				unauthorized(w, r, m.admin, err)
				return
			}

			logging.Ctx(r.Context()).Info().
				Str("admin", sanitizeLogValue(subject.Username)).
				Str("method", subject.Method).
				Str("path", sanitizeLogValue(r.URL.Path)).
				Msg("Admin request")
			next.ServeHTTP(w, r.WithContext(auth.ContextWithSubject(r.Context(), subject)))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, admin *auth.Admin, err error) {
	for _, c := range admin.Challenges() {
		w.Header().Add("WWW-Authenticate", c)
	}
	respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication required", err)
}
