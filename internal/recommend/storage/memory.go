// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package storage

import (
	"context"
	"sync"

	"github.com/tomtom215/cropwise/internal/models"
)

// MemoryStore keeps native-crop lists for the lifetime of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[models.NativeCacheKey][]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[models.NativeCacheKey][]string)}
}

// Get returns a copy of the stored list.
func (s *MemoryStore) Get(_ context.Context, key models.NativeCacheKey) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	crops, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneCrops(crops), nil
}

// Put stores a copy of crops.
func (s *MemoryStore) Put(_ context.Context, key models.NativeCacheKey, crops []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = cloneCrops(crops)
	return nil
}

// Delete removes one entry.
func (s *MemoryStore) Delete(_ context.Context, key models.NativeCacheKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Clear removes every entry.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[models.NativeCacheKey][]string)
	return nil
}

// Len returns the number of stored lists.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Name returns the backend name.
func (s *MemoryStore) Name() string {
	return BackendMemory
}
