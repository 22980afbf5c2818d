package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indicates the requested key is not in the cache.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a minimal key/value cache with expiration, backed by Redis in
// production and a mock in tests.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
