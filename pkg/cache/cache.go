// Package cache provides byte-oriented caching backends for upstream API
// responses.
//
// All backends implement [Cache]. The CLI picks one from configuration:
//
//   - [FileCache]: JSON files under ~/.cache/artistgraph (default)
//   - [SQLiteCache]: a single sqlite database file via gorm
//   - [RedisCache]: a shared Redis instance
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: caching disabled (--no-cache)
//
// Entries are opaque byte slices with an optional time-to-live. A TTL of zero
// means the entry never expires.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque payloads by key.
type Cache interface {
	// Get returns the payload for key. A miss, including an expired entry,
	// is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero stores it without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases connections held by the backend.
	Close() error
}

// HTTPKey builds the key under which an upstream response is cached.
// The format is "http:<namespace>:<key>", e.g. "http:spotify:artist:lamp".
func HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int64, error)
}
