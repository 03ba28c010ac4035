// Package cache provides the short-lived store-name caches behind the
// dashboard's filter bar.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cleanreports/internal/config"
	"cleanreports/internal/port"
)

// Backend names accepted by CacheConfig.Backend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// New builds the configured store-name cache. It returns nil for the "none"
// backend, and the redis client (or nil) so the caller can close it.
func New(ctx context.Context, cfg config.CacheConfig) (port.StoreNameCache, *redis.Client, error) {
	switch cfg.Backend {
	case BackendNone, "":
		return nil, nil, nil
	case BackendMemory:
		return NewMemoryStoreCache(5 * time.Minute), nil, nil
	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisStoreCache(rdb), rdb, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
