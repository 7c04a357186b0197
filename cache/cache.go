// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrKeyNotFound      = errors.New("cache key not found")
	ErrCacheUnavailable = errors.New("cache unavailable")
	ErrCacheClosed      = errors.New("cache closed")
)

// Cache is a byte-oriented key/value store with expiry. A ttl <= 0 keeps
// the key until it is deleted.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePattern removes keys matching a glob such as "leaderboard:*"
	DeletePattern(ctx context.Context, pattern string) error
	Close() error
}

// New returns a Redis cache when addr is set, otherwise an in-memory one
func New(addr, password string) (Cache, error) {
	if addr == "" {
		return NewMemoryCache(), nil
	}
	return NewRedisCache(addr, password)
}

// GetJSON decodes a cached value into v
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	raw, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode cached %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.Set(ctx, key, raw, ttl)
}
