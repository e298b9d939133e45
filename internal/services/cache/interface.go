package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented TTL cache
type Cache interface {
	// Get retrieves a live value
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value; ttl <= 0 uses the cache default
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value
	Delete(ctx context.Context, key string) error

	// Clear removes all values
	Clear(ctx context.Context) error

	// Has checks if a live value exists
	Has(ctx context.Context, key string) bool
}

// CacheStats provides statistics about cache usage
type CacheStats struct {
	Hits      int64
	Misses    int64
	Sets      int64
	Evictions int64
	Entries   int64
}
