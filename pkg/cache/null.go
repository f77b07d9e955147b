package cache

import (
	"context"
	"time"
)

// NullCache is a no-op cache that never stores anything.
// Every Get is a miss, which forces a network fetch.
type NullCache struct{}

// NewNullCache creates a cache that never stores anything.
func NewNullCache() *NullCache {
	return &NullCache{}
}

func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (NullCache) Delete(ctx context.Context, key string) error { return nil }

func (NullCache) Clear(ctx context.Context) error { return nil }

func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
