// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cropwise/internal/models"
)

// BadgerStore persists native-crop lists in BadgerDB.
type BadgerStore struct {
	db    *badger.DB
	owned bool
	now   func() time.Time
}

// OpenBadgerStore opens (or creates) a BadgerDB at path. The returned store
// owns the database and closes it in Close.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	// Entries are a few hundred bytes.
	opts.ValueLogFileSize = 16 << 20
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for native cache: %w", err)
	}
	return &BadgerStore{db: db, owned: true, now: time.Now}, nil
}

// NewBadgerStore creates a store on an existing database. Close does not
// close a shared database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db, now: time.Now}
}

// Get retrieves a stored list.
func (s *BadgerStore) Get(_ context.Context, key models.NativeCacheKey) ([]string, error) {
	var e entry

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(storageKey(key)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get native crops: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	if err != nil {
		return nil, err
	}
	return e.Crops, nil
}

// Put stores a list.
func (s *BadgerStore) Put(_ context.Context, key models.NativeCacheKey, crops []string) error {
	data, err := json.Marshal(entry{Crops: crops, ComputedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal native crops: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(storageKey(key)), data); err != nil {
			return fmt.Errorf("set native crops: %w", err)
		}
		return nil
	})
}

// Delete removes one entry.
func (s *BadgerStore) Delete(_ context.Context, key models.NativeCacheKey) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(storageKey(key)))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete native crops: %w", err)
		}
		return nil
	})
}

// Clear removes every native-crop entry and leaves other keys untouched.
func (s *BadgerStore) Clear(_ context.Context) error {
	if err := s.db.DropPrefix([]byte(keyPrefix)); err != nil {
		return fmt.Errorf("drop native crops: %w", err)
	}
	return nil
}

// Count returns the number of stored lists.
func (s *BadgerStore) Count() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count native crops: %w", err)
	}
	return count, nil
}

// Name returns the backend name.
func (s *BadgerStore) Name() string {
	return BackendBadger
}

// Close closes the database when the store opened it.
func (s *BadgerStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
