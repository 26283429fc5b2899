package llm

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// cacheEntry represents a cached summary.
type cacheEntry struct {
	expiry  time.Time
	summary string
}

// summaryCache provides thread-safe caching for generated summaries so a
// re-run over the same data does not pay for another request.
type summaryCache struct {
	entries map[string]cacheEntry
	now     func() time.Time
	ttl     time.Duration
	mu      sync.RWMutex
}

// newSummaryCache creates a new cache with the specified TTL.
func newSummaryCache(ttl time.Duration) *summaryCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	return &summaryCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// cacheKey derives a stable key from a prompt.
func cacheKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

// get retrieves a summary from the cache if it exists and hasn't expired.
// Expired entries are dropped on access.
func (c *summaryCache) get(key string) (string, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return "", false
	}

	if c.now().After(entry.expiry) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false
	}

	return entry.summary, true
}

// set stores a summary in the cache.
func (c *summaryCache) set(key, summary string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		summary: summary,
		expiry:  c.now().Add(c.ttl),
	}
}

// size returns the number of entries in the cache.
func (c *summaryCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
