package memo

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scandex/internal/domain/field"
)

// DefaultLowerCapacity bounds the case-folding memo.
const DefaultLowerCapacity = 4096

// Config tunes cache sizing.
type Config struct {
	// LowerCapacity caps the number of memoized case-folded strings.
	// DefaultLowerCapacity when zero or negative.
	LowerCapacity int
}

// Cache memoizes the repeated work of scanning: case folding, detected
// field lists, and per-field statistics. Safe for concurrent use.
type Cache struct {
	mu sync.RWMutex

	lowerCap   int
	lower      map[string]string
	lowerOrder []string

	fields map[string][]field.Path
	stats  map[string][]field.Stats

	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a cache.
// cacheTotal is a counter vec with labels "cache" and "result"
// ("hit"/"miss"), passed explicitly.
func New(cfg Config, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	capacity := cfg.LowerCapacity
	if capacity <= 0 {
		capacity = DefaultLowerCapacity
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		lowerCap:   capacity,
		lower:      make(map[string]string),
		fields:     make(map[string][]field.Path),
		stats:      make(map[string][]field.Stats),
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Lower returns the case-folded form of s, memoized up to capacity.
func (c *Cache) Lower(s string) string {
	c.mu.RLock()
	lowered, ok := c.lower[s]
	c.mu.RUnlock()
	if ok {
		c.incCache("lowercase", "hit")
		return lowered
	}
	c.incCache("lowercase", "miss")

	lowered = strings.ToLower(s)

	c.mu.Lock()
	if _, exists := c.lower[s]; !exists {
		if len(c.lower) >= c.lowerCap {
			c.evictOldestLowerLocked()
		}
		c.lower[s] = lowered
		c.lowerOrder = append(c.lowerOrder, s)
	}
	c.mu.Unlock()

	return lowered
}

// evictOldestLowerLocked drops the oldest half of the memoized strings.
// Caller holds the write lock.
func (c *Cache) evictOldestLowerLocked() {
	half := (len(c.lowerOrder) + 1) / 2
	for _, key := range c.lowerOrder[:half] {
		delete(c.lower, key)
	}
	c.lowerOrder = append(c.lowerOrder[:0], c.lowerOrder[half:]...)
	c.logger.Debug("Evicted case-fold memo entries", zap.Int("evicted", half))
}

// Fields returns the memoized detected field list for a collection key,
// building it on first use.
func (c *Cache) Fields(key string, build func() []field.Path) []field.Path {
	c.mu.RLock()
	paths, ok := c.fields[key]
	c.mu.RUnlock()
	if ok {
		c.incCache("fields", "hit")
		return paths
	}
	c.incCache("fields", "miss")

	paths = build()

	c.mu.Lock()
	c.fields[key] = paths
	c.mu.Unlock()

	return paths
}

// Stats returns the memoized field statistics for a collection key and
// field set, building them on first use.
func (c *Cache) Stats(key string, build func() []field.Stats) []field.Stats {
	c.mu.RLock()
	stats, ok := c.stats[key]
	c.mu.RUnlock()
	if ok {
		c.incCache("stats", "hit")
		return stats
	}
	c.incCache("stats", "miss")

	stats = build()

	c.mu.Lock()
	c.stats[key] = stats
	c.mu.Unlock()

	return stats
}

// Invalidate drops the field list and statistics memoized for a
// collection key. The case-fold memo is keyed by content and survives.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.fields, key)
	for k := range c.stats {
		if k == key || strings.HasPrefix(k, key+"|") {
			delete(c.stats, k)
		}
	}
}

// Clear drops every memoized entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lower = make(map[string]string)
	c.lowerOrder = nil
	c.fields = make(map[string][]field.Path)
	c.stats = make(map[string][]field.Stats)
}

// Occupancy reports entry counts per cache.
type Occupancy struct {
	Lower  int
	Fields int
	Stats  int
}

// Occupancy returns current entry counts.
func (c *Cache) Occupancy() Occupancy {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Occupancy{
		Lower:  len(c.lower),
		Fields: len(c.fields),
		Stats:  len(c.stats),
	}
}

func (c *Cache) incCache(cache, result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(cache, result).Inc()
	}
}
