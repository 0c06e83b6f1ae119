// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

// Package storage persists memoized native-crop lists.
//
// Three NativeStore implementations are provided: an in-process map, a
// BadgerDB store that survives restarts, and a Redis store that can be
// shared between replicas. Entries never expire; they are removed only
// through Delete or Clear.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/cropwise/internal/models"
)

// ErrNotFound is returned by Get when no list is stored for a key.
var ErrNotFound = errors.New("native crop list not found")

// Store backends.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// keyPrefix namespaces native-crop entries in shared key spaces.
const keyPrefix = "native:"

// NativeStore memoizes native-crop lists. Implementations are safe for
// concurrent use.
type NativeStore interface {
	// Get returns the stored list or ErrNotFound.
	Get(ctx context.Context, key models.NativeCacheKey) ([]string, error)

	// Put stores the list, replacing any previous entry.
	Put(ctx context.Context, key models.NativeCacheKey, crops []string) error

	// Delete removes one entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, key models.NativeCacheKey) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Name identifies the backend.
	Name() string
}

// entry is the serialized form used by the persistent backends.
type entry struct {
	Crops      []string  `json:"crops"`
	ComputedAt time.Time `json:"computed_at"`
}

func storageKey(key models.NativeCacheKey) string {
	return keyPrefix + key.String()
}

func cloneCrops(crops []string) []string {
	out := make([]string, len(crops))
	copy(out, crops)
	return out
}
