package cache

import (
	"log/slog"
	"sort"
	"sync"
	"time"
)

// CacheEntry is one stored value with its deadline and insertion sequence
type CacheEntry[V any] struct {
	Value     V
	ExpiresAt time.Time
	seq       uint64
}

// TTLCache maps string keys to values of any type until their deadline passes.
// Values lists the live entries in the order they were inserted; the clock is
// replaceable so expiry can be driven by tests.
type TTLCache[V any] struct {
	items         map[string]*CacheEntry[V]
	mutex         sync.RWMutex
	ttl           time.Duration
	seq           uint64
	now           func() time.Time
	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
	stopOnce      sync.Once
}

// NewTTLCache creates a cache whose entries live for ttl unless set otherwise.
// A positive cleanupInterval starts a background sweeper; zero disables it.
func NewTTLCache[V any](ttl, cleanupInterval time.Duration) *TTLCache[V] {
	cache := &TTLCache[V]{
		items:       make(map[string]*CacheEntry[V]),
		ttl:         ttl,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	if cleanupInterval > 0 {
		cache.cleanupTicker = time.NewTicker(cleanupInterval)
		go cache.cleanupExpiredEntries()
	}

	slog.Debug("TTL cache initialized",
		"ttl", ttl.String(),
		"cleanup_interval", cleanupInterval.String())

	return cache
}

// WithClock replaces the time source, used by tests
func (c *TTLCache[V]) WithClock(now func() time.Time) *TTLCache[V] {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = now
	return c
}

// Set stores a value in the cache with the default TTL
func (c *TTLCache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with an explicit TTL; non-positive uses the default
func (c *TTLCache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.seq++
	expiresAt := c.now().Add(ttl)
	c.items[key] = &CacheEntry[V]{
		Value:     value,
		ExpiresAt: expiresAt,
		seq:       c.seq,
	}

	slog.Debug("Cache entry set",
		"key", key,
		"expires_at", expiresAt.Format(time.RFC3339))
}

// Get retrieves a value from the cache if it exists and hasn't expired
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var zero V
	entry, exists := c.items[key]
	if !exists {
		return zero, false
	}

	if !c.now().Before(entry.ExpiresAt) {
		slog.Debug("Cache entry expired", "key", key)
		return zero, false
	}

	return entry.Value, true
}

// Values returns the live values in insertion order
func (c *TTLCache[V]) Values() []V {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	now := c.now()
	live := make([]*CacheEntry[V], 0, len(c.items))
	for _, entry := range c.items {
		if now.Before(entry.ExpiresAt) {
			live = append(live, entry)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].seq < live[j].seq })

	values := make([]V, len(live))
	for i, entry := range live {
		values[i] = entry.Value
	}
	return values
}

// Delete removes a specific key from the cache
func (c *TTLCache[V]) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, key)
	slog.Debug("Cache entry deleted", "key", key)
}

// Size returns the current number of items in the cache (including expired ones)
func (c *TTLCache[V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.items)
}

// ActiveSize returns the number of non-expired items in the cache
func (c *TTLCache[V]) ActiveSize() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	now := c.now()
	activeCount := 0
	for _, entry := range c.items {
		if now.Before(entry.ExpiresAt) {
			activeCount++
		}
	}
	return activeCount
}

// Clear removes all items from the cache
func (c *TTLCache[V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	itemCount := len(c.items)
	c.items = make(map[string]*CacheEntry[V])

	slog.Debug("Cache cleared", "removed_items", itemCount)
}

// Stop stops the cleanup goroutine. Safe to call more than once.
func (c *TTLCache[V]) Stop() {
	c.stopOnce.Do(func() {
		if c.cleanupTicker != nil {
			c.cleanupTicker.Stop()
		}
		close(c.stopCleanup)
	})
}

// cleanupExpiredEntries runs periodically to remove expired entries
func (c *TTLCache[V]) cleanupExpiredEntries() {
	for {
		select {
		case <-c.cleanupTicker.C:
			c.PerformCleanup()
		case <-c.stopCleanup:
			return
		}
	}
}

// PerformCleanup removes expired entries from the cache and returns how many were dropped
func (c *TTLCache[V]) PerformCleanup() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	expired := 0
	for key, entry := range c.items {
		if !now.Before(entry.ExpiresAt) {
			delete(c.items, key)
			expired++
		}
	}

	if expired > 0 {
		slog.Debug("Cache cleanup completed",
			"expired_entries", expired,
			"remaining_entries", len(c.items))
	}
	return expired
}
