package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanreports/internal/config"
)

func TestMemoryStoreCache_SetGet(t *testing.T) {
	c := NewMemoryStoreCache(time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, "stores")
	assert.False(t, ok)

	c.Set(ctx, "stores", []string{"A Store", "B Store"}, time.Minute)
	got, ok := c.Get(ctx, "stores")
	require.True(t, ok)
	assert.Equal(t, []string{"A Store", "B Store"}, got)
}

func TestMemoryStoreCache_ReturnsCopy(t *testing.T) {
	c := NewMemoryStoreCache(time.Minute)
	ctx := context.Background()
	c.Set(ctx, "stores", []string{"A Store"}, time.Minute)

	got, _ := c.Get(ctx, "stores")
	got[0] = "mutated"

	again, _ := c.Get(ctx, "stores")
	assert.Equal(t, []string{"A Store"}, again)
}

func TestMemoryStoreCache_Expires(t *testing.T) {
	c := NewMemoryStoreCache(time.Minute)
	ctx := context.Background()
	c.Set(ctx, "stores", []string{"A Store"}, 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	_, ok := c.Get(ctx, "stores")
	assert.False(t, ok)
}

func TestStoreCodec(t *testing.T) {
	raw, err := encodeStores(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	raw, err = encodeStores([]string{"清掃店", "B"})
	require.NoError(t, err)
	stores, err := decodeStores(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"清掃店", "B"}, stores)

	stores, err = decodeStores([]byte("null"))
	require.NoError(t, err)
	assert.Equal(t, []string{}, stores)

	_, err = decodeStores([]byte("{"))
	assert.Error(t, err)
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "cleanreports:stores:清掃完了", redisKey("stores:清掃完了"))
}

func TestNew_Backends(t *testing.T) {
	ctx := context.Background()

	c, rdb, err := New(ctx, config.CacheConfig{Backend: BackendNone})
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Nil(t, rdb)

	c, _, err = New(ctx, config.CacheConfig{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStoreCache{}, c)

	_, _, err = New(ctx, config.CacheConfig{Backend: "memcached"})
	assert.Error(t, err)
}
