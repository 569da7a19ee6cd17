// Package cache provides response caching for the crawl's outbound GitHub
// calls.
//
// Three backends implement the same interface: [FileCache] for normal CLI
// runs (entries under ~/.cache/agentdex/), [RedisCache] for CI environments
// where runs share a cache across machines, and [NullCache] to disable
// caching entirely (--no-cache). Keys are namespaced strings such as
// "github:tree:owner/repo"; values are opaque byte slices with a TTL.
package cache

import (
	"context"
	"time"
)

// TTLDefault is the time-to-live applied to GitHub responses unless
// configured otherwise. A day keeps re-runs cheap while letting star counts
// and trees move.
const TTLDefault = 24 * time.Hour

// Cache stores byte values under string keys with per-entry expiration.
type Cache interface {
	// Get returns the value for key. The second return reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
