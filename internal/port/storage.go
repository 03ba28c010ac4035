package port

import (
	"context"
	"time"
)

// PhotoURLSigner turns a stored photo key into a URL a browser can load.
type PhotoURLSigner interface {
	GetPresignedURL(ctx context.Context, key string) (string, error)
}

// StoreNameCache holds the distinct store enumeration for a short time.
// Get reports false on a miss or when the backend is unavailable.
type StoreNameCache interface {
	Get(ctx context.Context, key string) ([]string, bool)
	Set(ctx context.Context, key string, stores []string, ttl time.Duration)
}
