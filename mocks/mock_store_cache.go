package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockStoreCache is a mock implementation of port.StoreNameCache.
type MockStoreCache struct {
	mock.Mock
}

func (m *MockStoreCache) Get(ctx context.Context, key string) ([]string, bool) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]string), args.Bool(1)
}

func (m *MockStoreCache) Set(ctx context.Context, key string, stores []string, ttl time.Duration) {
	m.Called(ctx, key, stores, ttl)
}
