package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStoreCache keeps store names in process memory.
type MemoryStoreCache struct {
	c *gocache.Cache
}

// NewMemoryStoreCache creates an in-process cache that sweeps expired entries every cleanup interval.
func NewMemoryStoreCache(cleanup time.Duration) *MemoryStoreCache {
	return &MemoryStoreCache{c: gocache.New(gocache.NoExpiration, cleanup)}
}

func (m *MemoryStoreCache) Get(_ context.Context, key string) ([]string, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	stores, ok := v.([]string)
	if !ok {
		return nil, false
	}
	// Callers may modify the slice.
	return append([]string(nil), stores...), true
}

func (m *MemoryStoreCache) Set(_ context.Context, key string, stores []string, ttl time.Duration) {
	m.c.Set(key, append([]string(nil), stores...), ttl)
}
