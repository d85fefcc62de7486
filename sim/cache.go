package sim

import "math/rand"

// Cache is the probabilistic pass/forward stage between the application
// and data tiers. Each lookup is an independent Bernoulli draw from the
// cache's private stream; outcome does not depend on request identity or
// content. This models aggregate cache effect, not a keyed store with
// eviction — a deliberate simplification.
type Cache struct {
	hitRate float64
	rng     *rand.Rand

	hits   uint64
	misses uint64
}

// NewCache creates a Cache with the configured hit rate in [0, 1].
func NewCache(hitRate float64, rng *rand.Rand) *Cache {
	return &Cache{hitRate: hitRate, rng: rng}
}

// Lookup draws one Bernoulli sample and returns the outcome, updating the
// hit/miss counters.
func (c *Cache) Lookup() CacheOutcome {
	if c.rng.Float64() < c.hitRate {
		c.hits++
		return CacheHit
	}
	c.misses++
	return CacheMiss
}

// Stats returns the cache counters and the observed hit rate.
func (c *Cache) Stats() CacheStats {
	st := CacheStats{Hits: c.hits, Misses: c.misses}
	if total := c.hits + c.misses; total > 0 {
		st.ObservedHitRate = float64(c.hits) / float64(total)
	}
	return st
}
