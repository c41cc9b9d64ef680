// Package cache stores computed layouts and analysis reports keyed by the
// hash of the graph they were computed from.
//
// Three backends implement [Cache]:
//   - [NullCache]: never stores anything, for --no-cache runs and tests
//   - [FileCache]: one JSON file per entry under the user cache directory
//   - [RedisCache]: a shared Redis instance, for teams running the CLI
//     against the same drafts
//
// Keys come from a [Keyer], so callers never build key strings by hand:
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(graphJSON), cache.LayoutKeyOpts{Version: layout.Version})
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	DefaultTTL  = 24 * time.Hour
	TTLLayout   = DefaultTTL
	TTLAnalysis = DefaultTTL
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Clear empties c when it supports clearing and is a no-op otherwise.
func Clear(ctx context.Context, c Cache) error {
	if cl, ok := c.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}
