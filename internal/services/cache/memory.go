package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTTL applies when Set is given a non-positive ttl
const DefaultTTL = 30 * time.Minute

// MemoryCache is an in-process Cache bounded by entry count. When full, the
// entry closest to expiry is evicted.
type MemoryCache struct {
	mu         sync.RWMutex
	items      map[string]cacheItem
	maxEntries int
	now        func() time.Time

	hits, misses, sets, evictions atomic.Int64

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

type cacheItem struct {
	value  []byte
	expiry time.Time
}

// NewMemoryCache creates a cache holding at most maxEntries values
// (unbounded when maxEntries <= 0) and starts its janitor
func NewMemoryCache(maxEntries int) *MemoryCache {
	mc := &MemoryCache{
		items:      make(map[string]cacheItem),
		maxEntries: maxEntries,
		now:        time.Now,
		stopCh:     make(chan struct{}),
	}

	mc.wg.Add(1)
	go mc.janitor(time.Minute)

	return mc
}

// Get retrieves a live value
func (mc *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	mc.mu.RLock()
	item, ok := mc.items[key]
	mc.mu.RUnlock()

	if !ok || !mc.now().Before(item.expiry) {
		mc.misses.Add(1)
		return nil, false
	}
	mc.hits.Add(1)
	return item.value, true
}

// Set stores a copy of value
func (mc *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	stored := append([]byte(nil), value...)

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, exists := mc.items[key]; !exists && mc.maxEntries > 0 && len(mc.items) >= mc.maxEntries {
		mc.evictLocked()
	}
	mc.items[key] = cacheItem{value: stored, expiry: mc.now().Add(ttl)}
	mc.sets.Add(1)
	return nil
}

// Delete removes a value
func (mc *MemoryCache) Delete(ctx context.Context, key string) error {
	mc.mu.Lock()
	delete(mc.items, key)
	mc.mu.Unlock()
	return nil
}

// Clear removes all values
func (mc *MemoryCache) Clear(ctx context.Context) error {
	mc.mu.Lock()
	mc.items = make(map[string]cacheItem)
	mc.mu.Unlock()
	return nil
}

// Has checks if a live value exists
func (mc *MemoryCache) Has(ctx context.Context, key string) bool {
	mc.mu.RLock()
	item, ok := mc.items[key]
	mc.mu.RUnlock()
	return ok && mc.now().Before(item.expiry)
}

// Stats returns cache statistics
func (mc *MemoryCache) Stats() CacheStats {
	mc.mu.RLock()
	entries := int64(len(mc.items))
	mc.mu.RUnlock()

	return CacheStats{
		Hits:      mc.hits.Load(),
		Misses:    mc.misses.Load(),
		Sets:      mc.sets.Load(),
		Evictions: mc.evictions.Load(),
		Entries:   entries,
	}
}

// Stop shuts down the janitor; safe to call more than once
func (mc *MemoryCache) Stop() {
	mc.stopOnce.Do(func() { close(mc.stopCh) })
	mc.wg.Wait()
}

func (mc *MemoryCache) janitor(every time.Duration) {
	defer mc.wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.removeExpired()
		case <-mc.stopCh:
			return
		}
	}
}

func (mc *MemoryCache) removeExpired() {
	now := mc.now()
	mc.mu.Lock()
	for key, item := range mc.items {
		if !now.Before(item.expiry) {
			delete(mc.items, key)
			mc.evictions.Add(1)
		}
	}
	mc.mu.Unlock()
}

// evictLocked drops the entry that would expire first
func (mc *MemoryCache) evictLocked() {
	var (
		victim string
		first  time.Time
	)
	for key, item := range mc.items {
		if victim == "" || item.expiry.Before(first) {
			victim, first = key, item.expiry
		}
	}
	if victim != "" {
		delete(mc.items, victim)
		mc.evictions.Add(1)
	}
}
