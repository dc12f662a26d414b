package cache

import (
	"context"
	"time"
)

// NullCache stores nothing: every Get misses and every Set is dropped.
// Runs with --no-cache use it, so each render recomputes the layout.
//
// Like RedisCache, operations report a canceled context as an error.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

// Get misses.
func (NullCache) Get(ctx context.Context, _ string) ([]byte, bool, error) {
	return nil, false, ctx.Err()
}

// Set drops data.
func (NullCache) Set(ctx context.Context, _ string, _ []byte, _ time.Duration) error {
	return ctx.Err()
}

func (NullCache) Delete(ctx context.Context, _ string) error { return ctx.Err() }

func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
