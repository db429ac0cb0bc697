package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// maxMemoryTTL is the LRU's own expiry; per-entry TTLs shorter than this are
// enforced on read.
const maxMemoryTTL = 24 * time.Hour

// MemoryCache implements CacheBackend with a bounded, expiring LRU
type MemoryCache struct {
	lru *expirable.LRU[string, memoryCacheEntry]
}

type memoryCacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache holding at most maxSize entries
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = DefaultCacheConfig().MaxEntries
	}
	return &MemoryCache{
		lru: expirable.NewLRU[string, memoryCacheEntry](maxSize, nil, maxMemoryTTL),
	}
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, ok := m.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		m.lru.Remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.lru.Add(key, memoryCacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}

// Len reports the number of entries, including expired ones not yet evicted
func (m *MemoryCache) Len() int {
	return m.lru.Len()
}

func (m *MemoryCache) Close() error {
	m.lru.Purge()
	return nil
}
