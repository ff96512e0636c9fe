// Package cache provides response caching for registry and API lookups.
//
// Three backends are available:
//   - FileCache: persistent on-disk cache for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: no-op cache for tests or --no-cache runs
//
// All backends store opaque byte slices under string keys with a TTL.
// Expired entries are treated as misses and removed lazily.
package cache

import (
	"context"
	"time"
)

// Cache is the storage backend interface for cached responses.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was found
	// and not expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
