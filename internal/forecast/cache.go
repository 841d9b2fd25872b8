package forecast

import (
	"sync"

	"forecast-aggregation/internal/geo"
)

type cacheEntry struct {
	day      string // calendar day the forecast was computed for
	forecast Forecast
}

// Cache is a concurrency-safe in-memory store of aggregated forecasts keyed
// by position. An entry is valid only for reads on the day it was computed;
// stale entries are not deleted, they are ignored on read and replaced by the
// next successful store. There is no eviction: growth is bounded by the
// static city catalog feeding the keys.
type Cache struct {
	mu      sync.RWMutex
	entries map[geo.Position]cacheEntry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[geo.Position]cacheEntry)}
}

// Lookup returns the forecast stored for pos iff its entry was computed for
// day. A missing entry and an entry for any other day are both misses.
func (c *Cache) Lookup(pos geo.Position, day string) (Forecast, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key, ok := c.resolve(pos)
	if !ok {
		return Forecast{}, false
	}

	entry := c.entries[key]
	if entry.day != day {
		return Forecast{}, false
	}
	return entry.forecast, true
}

// Store inserts or replaces the entry for pos. Concurrent stores for the same
// position are serialized; last writer wins.
func (c *Cache) Store(pos geo.Position, day string, f Forecast) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key, ok := c.resolve(pos); ok {
		pos = key
	}
	c.entries[pos] = cacheEntry{day: day, forecast: f}
}

// resolve maps pos to the canonical stored key. Catalog positions are
// bit-identical across lookups so the exact map hit is the expected path; the
// epsilon scan keeps tolerance-equal coordinates on one key and is bounded by
// the catalog size. Callers must hold c.mu.
func (c *Cache) resolve(pos geo.Position) (geo.Position, bool) {
	if _, ok := c.entries[pos]; ok {
		return pos, true
	}
	for key := range c.entries {
		if key.Equal(pos) {
			return key, true
		}
	}
	return geo.Position{}, false
}
