package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/clipdex/clipdex-cli/internal/core/domain"
)

// defaultCacheTTL bounds how long a formatted result list is served
// without re-running the search pipeline.
const defaultCacheTTL = 5 * time.Minute

// resultCache memoizes formatted results per (query, limit) pair.
// Purely derived state: losing it costs speed, never correctness.
// Expiry is lazy; there is no background sweep and no size bound.
type resultCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	results  []domain.Result
	storedAt time.Time
}

func newResultCache(ttl time.Duration) *resultCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &resultCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func cacheKey(query string, limit int) string {
	return fmt.Sprintf("%s_%d", query, limit)
}

// get returns the cached results for (query, limit). An entry older than
// the TTL is treated as absent; it stays in the map until the next put
// for the same key overwrites it.
func (c *resultCache) get(query string, limit int) ([]domain.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cacheKey(query, limit)]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		return nil, false
	}
	return entry.results, true
}

func (c *resultCache) put(query string, limit int, results []domain.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(query, limit)] = cacheEntry{
		results:  results,
		storedAt: c.now(),
	}
}

// size counts entries, expired ones included.
func (c *resultCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
