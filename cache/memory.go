// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"context"
	"path"
	"sync"
	"time"
)

type item struct {
	value   []byte
	expires time.Time // zero means no expiry
}

func (it item) expired(now time.Time) bool {
	return !it.expires.IsZero() && now.After(it.expires)
}

// MemoryCache implements Cache in process memory.
// Expired entries are dropped lazily on read and on DeletePattern.
type MemoryCache struct {
	mu     sync.RWMutex
	items  map[string]item
	closed bool
	now    func() time.Time
}

var _ Cache = (*MemoryCache)(nil)

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]item), now: time.Now}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrCacheClosed
	}
	it, ok := c.items[key]
	if !ok || it.expired(c.now()) {
		return nil, ErrKeyNotFound
	}

	out := make([]byte, len(it.value))
	copy(out, it.value)
	return out, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCacheClosed
	}
	v := make([]byte, len(value))
	copy(v, value)
	it := item{value: v}
	if ttl > 0 {
		it.expires = c.now().Add(ttl)
	}
	c.items[key] = it
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// DeletePattern matches keys with path.Match, which covers the * and ?
// globs the Redis implementation is used with
func (c *MemoryCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, it := range c.items {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return err
		}
		if matched || it.expired(now) {
			delete(c.items, key)
		}
	}
	return nil
}

func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.items = make(map[string]item)
	return nil
}
