// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package auth

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func basicHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func request(authorization string) *http.Request {
	r := httptest.NewRequest(http.MethodDelete, "/api/v1/native/cache", nil)
	if authorization != "" {
		r.Header.Set("Authorization", authorization)
	}
	return r
}

func TestBasicAuthenticator(t *testing.T) {
	t.Parallel()

	a, err := NewBasicAuthenticator("ops", testHash(t, "correct horse battery"))
	if err != nil {
		t.Fatalf("NewBasicAuthenticator() error = %v", err)
	}

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{"valid", basicHeader("ops", "correct horse battery"), nil},
		{"no header", "", ErrNoCredentials},
		{"bearer header", "Bearer abc", ErrNoCredentials},
		{"wrong password", basicHeader("ops", "wrong"), ErrInvalidCredentials},
		{"wrong user", basicHeader("root", "correct horse battery"), ErrInvalidCredentials},
		{"bad base64", "Basic !!!", ErrInvalidCredentials},
		{"no colon", "Basic " + base64.StdEncoding.EncodeToString([]byte("ops")), ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := a.Authenticate(request(tt.header))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && (s.Username != "ops" || s.Method != "basic") {
				t.Errorf("subject = %+v", s)
			}
		})
	}
}

func TestNewBasicAuthenticator_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, user, hash string
	}{
		{"missing user", "", "$2a$04$abc"},
		{"missing hash", "ops", ""},
		{"plain text hash", "ops", "not-a-hash"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewBasicAuthenticator(tt.user, tt.hash); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestHashPassword(t *testing.T) {
	t.Parallel()

	if _, err := HashPassword("short"); err == nil {
		t.Error("HashPassword(short) error = nil")
	}
	hash, err := HashPassword("a long enough password")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if _, err := NewBasicAuthenticator("ops", hash); err != nil {
		t.Errorf("hash not accepted: %v", err)
	}
}

func TestJWTAuthenticator(t *testing.T) {
	t.Parallel()

	a, err := NewJWTAuthenticator(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTAuthenticator() error = %v", err)
	}
	token, expires, err := a.GenerateToken("ops")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Errorf("expires = %v, want future", expires)
	}

	s, err := a.Authenticate(request("Bearer " + token))
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if s.Username != "ops" || s.Method != "jwt" {
		t.Errorf("subject = %+v", s)
	}

	other, _ := NewJWTAuthenticator("ffffffffffffffffffffffffffffffff", time.Hour)
	foreign, _, _ := other.GenerateToken("ops")

	expiredAuth, _ := NewJWTAuthenticator(testSecret, time.Hour)
	expiredAuth.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, _ := expiredAuth.GenerateToken("ops")

	viewer, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Username: "ops",
		Role:     "viewer",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{"no header", "", ErrNoCredentials},
		{"basic header", basicHeader("ops", "x"), ErrNoCredentials},
		{"garbage", "Bearer not.a.token", ErrInvalidCredentials},
		{"wrong secret", "Bearer " + foreign, ErrInvalidCredentials},
		{"expired", "Bearer " + expired, ErrInvalidCredentials},
		{"non-admin role", "Bearer " + viewer, ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := a.Authenticate(request(tt.header)); !errors.Is(err, tt.wantErr) {
				t.Errorf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewJWTAuthenticator_ShortSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewJWTAuthenticator("short", 0); err == nil {
		t.Error("expected error for short secret")
	}
	a, err := NewJWTAuthenticator(testSecret, 0)
	if err != nil {
		t.Fatalf("NewJWTAuthenticator() error = %v", err)
	}
	if a.timeout != DefaultJWTTimeout {
		t.Errorf("timeout = %v, want %v", a.timeout, DefaultJWTTimeout)
	}
}

func TestAdmin(t *testing.T) {
	t.Parallel()

	hash := testHash(t, "correct horse battery")
	admin, jwtAuth, err := New(Config{AdminUsername: "ops", AdminPasswordHash: hash, JWTSecret: testSecret})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !admin.Enabled() || len(admin.Methods()) != 2 || len(admin.Challenges()) != 2 {
		t.Fatalf("admin methods = %v", admin.Methods())
	}
	token, _, _ := jwtAuth.GenerateToken("ops")

	tests := []struct {
		name       string
		header     string
		wantErr    error
		wantMethod string
	}{
		{"basic", basicHeader("ops", "correct horse battery"), nil, "basic"},
		{"jwt", "Bearer " + token, nil, "jwt"},
		{"anonymous", "", ErrNoCredentials, ""},
		{"wrong password", basicHeader("ops", "nope"), ErrInvalidCredentials, ""},
		{"bad token", "Bearer x", ErrInvalidCredentials, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := admin.Authenticate(request(tt.header))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && s.Method != tt.wantMethod {
				t.Errorf("Method = %q, want %q", s.Method, tt.wantMethod)
			}
		})
	}
}

func TestAdmin_NotConfigured(t *testing.T) {
	t.Parallel()

	admin, jwtAuth, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if admin.Enabled() || jwtAuth != nil {
		t.Error("empty config enabled an authenticator")
	}
	if _, err := admin.Authenticate(request(basicHeader("ops", "x"))); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Authenticate() error = %v, want ErrNotConfigured", err)
	}

	var nilAdmin *Admin
	if _, err := nilAdmin.Authenticate(request("")); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("nil Admin error = %v, want ErrNotConfigured", err)
	}

	if _, _, err := New(Config{AdminUsername: "ops"}); err == nil {
		t.Error("username without hash accepted")
	}
	if _, _, err := New(Config{JWTSecret: "short"}); err == nil {
		t.Error("short JWT secret accepted")
	}
}

func TestSubjectContext(t *testing.T) {
	t.Parallel()

	r := request("")
	if _, ok := SubjectFromContext(r.Context()); ok {
		t.Error("empty context has a subject")
	}
	ctx := ContextWithSubject(r.Context(), &Subject{Username: "ops", Method: "basic"})
	s, ok := SubjectFromContext(ctx)
	if !ok || s.Username != "ops" {
		t.Errorf("SubjectFromContext() = %+v, %v", s, ok)
	}
}
