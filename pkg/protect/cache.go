package protect

import (
	"sync"
	"time"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// resultCache is the in-process assessment cache (spec §4.8 step 5,
// §5): a mutex-guarded map keyed by "standard-identity:data-fingerprint",
// TTL-checked at read time. A zero TTL disables caching entirely so
// every call re-runs the assessment (property P7 only applies when the
// TTL is positive).
type resultCache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	result  *adri.AssessmentResult
	cachedAt time.Time
}

func newResultCache(ttl time.Duration) *resultCache {
	return &resultCache{ttl: ttl, entries: map[string]cacheEntry{}}
}

func (c *resultCache) get(key string) (*adri.AssessmentResult, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.cachedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.result, true
}

func (c *resultCache) put(key string, result *adri.AssessmentResult) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{result: result, cachedAt: time.Now()}
}
