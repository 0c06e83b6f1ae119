// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is enforced by HashPassword.
const MinPasswordLength = 12

// bcryptCost is used when hashing new passwords.
const bcryptCost = 12

// BasicAuthenticator accepts HTTP Basic credentials for one admin user.
type BasicAuthenticator struct {
	username     string
	passwordHash []byte
}

// NewBasicAuthenticator checks that passwordHash is a bcrypt hash. The
// plain password is never held in memory.
func NewBasicAuthenticator(username, passwordHash string) (*BasicAuthenticator, error) {
	if username == "" {
		return nil, errors.New("ADMIN_USERNAME is required with ADMIN_PASSWORD_HASH")
	}
	if passwordHash == "" {
		return nil, errors.New("ADMIN_PASSWORD_HASH is required with ADMIN_USERNAME")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
	}
	return &BasicAuthenticator{username: username, passwordHash: []byte(passwordHash)}, nil
}

// HashPassword returns the bcrypt hash to put in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Authenticate validates the Authorization: Basic header.
func (a *BasicAuthenticator) Authenticate(r *http.Request) (*Subject, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Basic ") {
		return nil, ErrNoCredentials
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Basic "))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return nil, ErrInvalidCredentials
	}

	// Both comparisons always run so timing does not reveal which failed.
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	if !userOK || !passOK {
		return nil, ErrInvalidCredentials
	}
	return &Subject{Username: username, Method: a.Name()}, nil
}

// Name returns "basic".
func (a *BasicAuthenticator) Name() string {
	return "basic"
}

// Challenge returns the Basic WWW-Authenticate value.
func (a *BasicAuthenticator) Challenge() string {
	return `Basic realm="Cropwise", charset="UTF-8"`
}
