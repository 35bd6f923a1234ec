// Package cache stores fetched asset bytes (remote QR images, signature
// images) behind a small key/value interface.
//
// Rendered artifacts are never cached: every render recomputes layout and
// drawing from scratch. Only the bytes returned by external collaborators are
// kept, so a slow QR service or media host is not hit once per cell.
//
// Implementations:
//   - [FileCache]: JSON entries on disk, used by the CLI
//   - [RedisCache]: shared cache for multi-instance servers
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind.
const (
	// TTLQR is how long a fetched QR image stays valid. QR symbols for a
	// given URL never change, so this is long.
	TTLQR = 30 * 24 * time.Hour

	// TTLMedia is how long a fetched signature image stays valid.
	TTLMedia = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored bytes and true on a hit. A miss returns
	// (nil, false, nil); errors are reserved for backend failures.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache is a no-op cache that never stores anything.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always returns a cache miss.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set does nothing.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (NullCache) Close() error { return nil }

// Fetch returns the cached value for key, or calls fill, stores its result
// with ttl and returns it. The boolean reports a cache hit. Backend read
// errors are treated as misses and write errors are ignored, so a broken
// cache only costs a refetch.
func Fetch(ctx context.Context, c Cache, key string, ttl time.Duration, fill func() ([]byte, error)) ([]byte, bool, error) {
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}
	data, err := fill()
	if err != nil {
		return nil, false, err
	}
	_ = c.Set(ctx, key, data, ttl)
	return data, false, nil
}
