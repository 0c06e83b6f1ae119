// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

/*
Package auth authenticates operators for the administrative endpoints.

Two authenticators are supported and may be enabled together:

  - Basic: ADMIN_USERNAME plus a bcrypt ADMIN_PASSWORD_HASH
  - JWT: HS256 bearer tokens signed with JWT_SECRET and carrying the admin role

Generate the hash and tokens with cropctl:

	cropctl auth hash-password < password.txt
	cropctl auth token --username ops

Admin tries each authenticator in order. When none is configured every
admin request is refused with ErrNotConfigured.
*/
package auth
