package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// GetJSON decodes the cached value under key into out
func GetJSON(ctx context.Context, c Cache, key string, out any) bool {
	raw, ok := c.Get(ctx, key)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// SetJSON encodes v and caches it under key
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding cache entry %s: %w", key, err)
	}
	return c.Set(ctx, key, raw, ttl)
}
