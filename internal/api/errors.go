// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package api

import (
	"errors"

	"github.com/tomtom215/cropwise/internal/validation"
)

// Error codes carried in models.APIError.Code.
const (
	ErrCodeValidation       = validation.ErrorCode
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeAdminDisabled    = "ADMIN_DISABLED"
)

// ErrBodyTooLarge is returned by decodeJSON when the body exceeds maxBodyBytes.
var ErrBodyTooLarge = errors.New("request body too large")
