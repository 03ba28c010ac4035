package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const redisKeyPrefix = "cleanreports:"

// RedisStoreCache shares store names between server instances.
// Redis errors are logged and treated as misses.
type RedisStoreCache struct {
	rdb *redis.Client
}

// NewRedisStoreCache wraps an existing redis client.
func NewRedisStoreCache(rdb *redis.Client) *RedisStoreCache {
	return &RedisStoreCache{rdb: rdb}
}

func redisKey(key string) string {
	return redisKeyPrefix + key
}

func encodeStores(stores []string) ([]byte, error) {
	if stores == nil {
		stores = []string{}
	}
	return json.Marshal(stores)
}

func decodeStores(raw []byte) ([]string, error) {
	var stores []string
	if err := json.Unmarshal(raw, &stores); err != nil {
		return nil, err
	}
	if stores == nil {
		stores = []string{}
	}
	return stores, nil
}

func (r *RedisStoreCache) Get(ctx context.Context, key string) ([]string, bool) {
	raw, err := r.rdb.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithError(err).WithField("key", key).Warn("redis store cache get failed")
		}
		return nil, false
	}
	stores, err := decodeStores(raw)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("redis store cache holds malformed entry")
		return nil, false
	}
	return stores, true
}

func (r *RedisStoreCache) Set(ctx context.Context, key string, stores []string, ttl time.Duration) {
	raw, err := encodeStores(stores)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, redisKey(key), raw, ttl).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("redis store cache set failed")
	}
}
