// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrNoCredentials means the request carried no credentials an
	// authenticator understands.
	ErrNoCredentials = errors.New("no credentials provided")

	// ErrInvalidCredentials means credentials were present but rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotConfigured means no admin authenticator is enabled.
	ErrNotConfigured = errors.New("admin authentication not configured")
)

// RoleAdmin is the only role the service grants.
const RoleAdmin = "admin"

// Subject is an authenticated operator.
type Subject struct {
	Username string
	Method   string
}

// Authenticator validates the credentials of a request.
type Authenticator interface {
	// Authenticate returns ErrNoCredentials when the request carries
	// nothing for this authenticator, ErrInvalidCredentials when it does
	// but they are wrong.
	Authenticate(r *http.Request) (*Subject, error)
	Name() string
	// Challenge is the WWW-Authenticate value sent with a 401.
	Challenge() string
}

// Config holds admin credentials. Empty fields disable the matching
// authenticator.
type Config struct {
	AdminUsername     string
	AdminPasswordHash string
	JWTSecret         string
	JWTTimeout        time.Duration
}

// Admin checks requests against the enabled authenticators.
type Admin struct {
	authenticators []Authenticator
}

// NewAdmin builds an Admin from the given authenticators. Nil entries are
// skipped.
func NewAdmin(authenticators ...Authenticator) *Admin {
	a := &Admin{}
	for _, au := range authenticators {
		if au != nil {
			a.authenticators = append(a.authenticators, au)
		}
	}
	return a
}

// New builds the authenticators enabled by cfg.
func New(cfg Config) (*Admin, *JWTAuthenticator, error) {
	var list []Authenticator

	if cfg.AdminUsername != "" || cfg.AdminPasswordHash != "" {
		basic, err := NewBasicAuthenticator(cfg.AdminUsername, cfg.AdminPasswordHash)
		if err != nil {
			return nil, nil, fmt.Errorf("basic auth: %w", err)
		}
		list = append(list, basic)
	}

	var jwtAuth *JWTAuthenticator
	if cfg.JWTSecret != "" {
		var err error
		jwtAuth, err = NewJWTAuthenticator(cfg.JWTSecret, cfg.JWTTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("jwt auth: %w", err)
		}
		list = append(list, jwtAuth)
	}

	return NewAdmin(list...), jwtAuth, nil
}

// Enabled reports whether any authenticator is configured. A nil Admin is
// not enabled.
func (a *Admin) Enabled() bool {
	return a != nil && len(a.authenticators) > 0
}

// Methods lists the enabled authenticator names.
func (a *Admin) Methods() []string {
	if a == nil {
		return nil
	}
	names := make([]string, len(a.authenticators))
	for i, au := range a.authenticators {
		names[i] = au.Name()
	}
	return names
}

// Authenticate returns the first subject any authenticator accepts. Wrong
// credentials for one method fail the request even if another method
// would have found nothing.
func (a *Admin) Authenticate(r *http.Request) (*Subject, error) {
	if !a.Enabled() {
		return nil, ErrNotConfigured
	}
	for _, au := range a.authenticators {
		subject, err := au.Authenticate(r)
		switch {
		case err == nil:
			return subject, nil
		case errors.Is(err, ErrNoCredentials):
			continue
		default:
			return nil, err
		}
	}
	return nil, ErrNoCredentials
}

// Challenges returns the WWW-Authenticate values of every authenticator.
func (a *Admin) Challenges() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.authenticators))
	for i, au := range a.authenticators {
		out[i] = au.Challenge()
	}
	return out
}

type contextKey struct{}

// ContextWithSubject stores the authenticated subject.
func ContextWithSubject(ctx context.Context, s *Subject) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// SubjectFromContext returns the authenticated subject, if any.
func SubjectFromContext(ctx context.Context) (*Subject, bool) {
	s, ok := ctx.Value(contextKey{}).(*Subject)
	return s, ok && s != nil
}
