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

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/cropwise/internal/models"
)

// RedisConfig holds the connection settings for RedisStore.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Namespace is prepended to every key so several deployments can share
	// one Redis database.
	Namespace string
}

// RedisStore keeps native-crop lists in Redis so replicas share them.
type RedisStore struct {
	client    *redis.Client
	namespace string
	now       func() time.Time
}

// scanBatch is the SCAN page size used by Clear.
const scanBatch = 200

// OpenRedisStore connects to Redis and verifies the connection.
func OpenRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return NewRedisStore(client, cfg.Namespace), nil
}

// NewRedisStore creates a store on an existing client.
func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{client: client, namespace: namespace, now: time.Now}
}

func (s *RedisStore) key(key models.NativeCacheKey) string {
	return s.namespace + storageKey(key)
}

// Get retrieves a stored list.
func (s *RedisStore) Get(ctx context.Context, key models.NativeCacheKey) ([]string, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get native crops: %w", err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal native crops: %w", err)
	}
	return e.Crops, nil
}

// Put stores a list without expiry.
func (s *RedisStore) Put(ctx context.Context, key models.NativeCacheKey, crops []string) error {
	data, err := json.Marshal(entry{Crops: crops, ComputedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal native crops: %w", err)
	}
	if err := s.client.Set(ctx, s.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("set native crops: %w", err)
	}
	return nil
}

// Delete removes one entry.
func (s *RedisStore) Delete(ctx context.Context, key models.NativeCacheKey) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("delete native crops: %w", err)
	}
	return nil
}

// Clear removes every native-crop entry in the namespace.
func (s *RedisStore) Clear(ctx context.Context) error {
	pattern := s.namespace + keyPrefix + "*"
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("scan native crops: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete native crops: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Name returns the backend name.
func (s *RedisStore) Name() string {
	return BackendRedis
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
