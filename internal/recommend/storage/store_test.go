// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package storage

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/cropwise/internal/models"
)

var (
	keyLudhiana = models.NativeCacheKey{State: "Punjab", District: "Ludhiana", Season: "rabi_early"}
	keyPune     = models.NativeCacheKey{State: "Maharashtra", District: "Pune", Season: models.NativeCacheKeyAllSeasons}
)

// exerciseStore runs the NativeStore contract against any backend.
func exerciseStore(t *testing.T, s NativeStore) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, keyLudhiana); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}

	want := []string{"wheat", "rice", "maize"}
	if err := s.Put(ctx, keyLudhiana, want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Put(ctx, keyPune, []string{"cotton"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, keyLudhiana)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}

	// Overwrite.
	if err := s.Put(ctx, keyLudhiana, []string{"barley"}); err != nil {
		t.Fatalf("Put(overwrite) error = %v", err)
	}
	got, _ = s.Get(ctx, keyLudhiana)
	if diff := cmp.Diff([]string{"barley"}, got); diff != "" {
		t.Errorf("Get() after overwrite mismatch (-want +got):\n%s", diff)
	}

	if err := s.Delete(ctx, keyLudhiana); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, keyLudhiana); err != nil {
		t.Fatalf("Delete(missing) error = %v", err)
	}
	if _, err := s.Get(ctx, keyLudhiana); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
	if _, err := s.Get(ctx, keyPune); err != nil {
		t.Errorf("Delete removed an unrelated key: %v", err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := s.Get(ctx, keyPune); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Clear error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	exerciseStore(t, s)

	if s.Name() != BackendMemory {
		t.Errorf("Name() = %q, want %q", s.Name(), BackendMemory)
	}
}

func TestMemoryStore_Isolation(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	in := []string{"wheat", "rice"}
	_ = s.Put(ctx, keyLudhiana, in)
	in[0] = "changed"

	out, _ := s.Get(ctx, keyLudhiana)
	if out[0] != "wheat" {
		t.Errorf("stored list aliased caller slice: %v", out)
	}
	out[1] = "changed"

	again, _ := s.Get(ctx, keyLudhiana)
	if again[1] != "rice" {
		t.Errorf("returned list aliased stored slice: %v", again)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func openTestBadger(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBadgerStore(t *testing.T) {
	t.Parallel()

	s, err := OpenBadgerStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	defer s.Close()

	exerciseStore(t, s)

	if s.Name() != BackendBadger {
		t.Errorf("Name() = %q, want %q", s.Name(), BackendBadger)
	}
}

func TestBadgerStore_SeparatorInFields(t *testing.T) {
	t.Parallel()

	s, err := OpenBadgerStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	a := models.NativeCacheKey{State: "X", District: "Y|Z", Season: models.NativeCacheKeyAllSeasons}
	b := models.NativeCacheKey{State: "X|Y", District: "Z", Season: models.NativeCacheKeyAllSeasons}

	if err := s.Put(ctx, a, []string{"from-a"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if got, err := s.Get(ctx, b); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(b) = %v, %v; want ErrNotFound", got, err)
	}
}

func TestBadgerStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	s, err := OpenBadgerStore(dir)
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	if err := s.Put(ctx, keyLudhiana, []string{"wheat", "rice"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenBadgerStore(dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, keyLudhiana)
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if diff := cmp.Diff([]string{"wheat", "rice"}, got); diff != "" {
		t.Errorf("Get() after reopen mismatch (-want +got):\n%s", diff)
	}
}

func TestBadgerStore_SharedDB(t *testing.T) {
	t.Parallel()

	db := openTestBadger(t)
	ctx := context.Background()

	// A key outside the native namespace must survive Clear.
	if err := db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("other:key"), []byte("v"))
	}); err != nil {
		t.Fatalf("seed other key: %v", err)
	}

	s := NewBadgerStore(db)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	_ = s.Put(ctx, keyLudhiana, []string{"wheat"})
	_ = s.Put(ctx, keyPune, []string{"cotton"})

	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n, _ := s.Count(); n != 0 {
		t.Errorf("Count() after Clear = %d, want 0", n)
	}

	err = db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte("other:key"))
		return err
	})
	if err != nil {
		t.Errorf("Clear removed a foreign key: %v", err)
	}

	// Close on a shared database is a no-op.
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if db.IsClosed() {
		t.Error("Close() closed a shared database")
	}
}

func TestRedisStore_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := OpenRedisStore(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	if err == nil {
		t.Fatal("OpenRedisStore() error = nil, want connection error")
	}
}

// TestRedisStore runs the contract against a live server when
// CROPWISE_TEST_REDIS_ADDR is set.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("CROPWISE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CROPWISE_TEST_REDIS_ADDR not set")
	}

	s, err := OpenRedisStore(context.Background(), RedisConfig{Addr: addr, Namespace: "cropwise-test:" + t.Name() + ":"})
	if err != nil {
		t.Fatalf("OpenRedisStore() error = %v", err)
	}
	defer s.Close()

	exerciseStore(t, s)
}

func TestRedisStore_KeyNamespace(t *testing.T) {
	t.Parallel()

	s := NewRedisStore(nil, "cropwise:")
	if got := s.key(keyLudhiana); got != "cropwise:native:Punjab|Ludhiana|rabi_early" {
		t.Errorf("key() = %q", got)
	}
	if s.Name() != BackendRedis {
		t.Errorf("Name() = %q, want %q", s.Name(), BackendRedis)
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("default is memory", func(t *testing.T) {
		t.Parallel()
		s, closeFn, err := Open(ctx, Config{})
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer closeFn()
		if s.Name() != BackendMemory {
			t.Errorf("Name() = %q, want memory", s.Name())
		}
	})

	t.Run("badger", func(t *testing.T) {
		t.Parallel()
		s, closeFn, err := Open(ctx, Config{Backend: BackendBadger, BadgerDir: t.TempDir()})
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if s.Name() != BackendBadger {
			t.Errorf("Name() = %q, want badger", s.Name())
		}
		if err := closeFn(); err != nil {
			t.Errorf("close error = %v", err)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Parallel()
		if _, _, err := Open(ctx, Config{Backend: "etcd"}); err == nil {
			t.Error("Open() error = nil, want error")
		}
	})
}
