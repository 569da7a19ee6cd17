package cache

import (
	"context"
	"time"
)

// NullCache never stores anything, so every GitHub call hits the network.
// It backs the --no-cache flag and keeps source tests free of cache state.
type NullCache struct{}

// NewNullCache creates a cache that misses on every lookup.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always reports a miss, forcing a fresh fetch.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the response.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing; there is never anything to remove.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
