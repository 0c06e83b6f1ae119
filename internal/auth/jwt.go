// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinJWTSecretLength is the shortest accepted HS256 secret.
const MinJWTSecretLength = 32

// DefaultJWTTimeout is the token lifetime when none is configured.
const DefaultJWTTimeout = time.Hour

// issuer is set on every token and required on validation.
const issuer = "cropwise"

// Claims are the JWT claims of an operator token.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuthenticator issues and validates HS256 bearer tokens.
type JWTAuthenticator struct {
	secret  []byte
	timeout time.Duration
	now     func() time.Time
}

// NewJWTAuthenticator creates an authenticator. A zero timeout uses
// DefaultJWTTimeout.
func NewJWTAuthenticator(secret string, timeout time.Duration) (*JWTAuthenticator, error) {
	if len(secret) < MinJWTSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters", MinJWTSecretLength)
	}
	if timeout <= 0 {
		timeout = DefaultJWTTimeout
	}
	return &JWTAuthenticator{secret: []byte(secret), timeout: timeout, now: time.Now}, nil
}

// GenerateToken signs an admin token for username.
func (a *JWTAuthenticator) GenerateToken(username string) (string, time.Time, error) {
	if username == "" {
		return "", time.Time{}, errors.New("username is required")
	}
	now := a.now()
	expires := now.Add(a.timeout)
	claims := &Claims{
		Username: username,
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// ValidateToken parses a token and checks signature, expiry, issuer and
// role.
func (a *JWTAuthenticator) ValidateToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Role != RoleAdmin {
		return nil, fmt.Errorf("role %q is not %s", claims.Role, RoleAdmin)
	}
	return claims, nil
}

// Authenticate validates the Authorization: Bearer header.
func (a *JWTAuthenticator) Authenticate(r *http.Request) (*Subject, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, ErrNoCredentials
	}
	claims, err := a.ValidateToken(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	return &Subject{Username: claims.Username, Method: a.Name()}, nil
}

// Name returns "jwt".
func (a *JWTAuthenticator) Name() string {
	return "jwt"
}

// Challenge returns the Bearer WWW-Authenticate value.
func (a *JWTAuthenticator) Challenge() string {
	return `Bearer realm="Cropwise"`
}
