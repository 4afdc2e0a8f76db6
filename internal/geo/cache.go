package geo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jewarner57/weather-pages/internal/weather"
)

type cacheEntry struct {
	coord   weather.Coordinate
	expires time.Time
}

// Cache is a concurrency-safe TTL map of resolved place names. City names
// are case-folded so "London" and "london" share an entry.
type Cache struct {
	mu   sync.RWMutex
	data map[string]cacheEntry
	ttl  time.Duration
}

// NewCache creates a Cache. A ttl <= 0 means entries never expire.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		data: make(map[string]cacheEntry),
		ttl:  ttl,
	}
}

func cacheKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// Get returns the cached coordinate for a city, if present and fresh.
func (c *Cache) Get(city string) (weather.Coordinate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.data[cacheKey(city)]
	if !ok {
		return weather.Coordinate{}, false
	}
	if c.ttl > 0 && time.Now().After(entry.expires) {
		return weather.Coordinate{}, false
	}
	return entry.coord, true
}

// Put stores a resolved coordinate.
func (c *Cache) Put(city string, coord weather.Coordinate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[cacheKey(city)] = cacheEntry{
		coord:   coord,
		expires: time.Now().Add(c.ttl),
	}
}

// Prune drops expired entries and returns how many were removed.
func (c *Cache) Prune() int {
	if c.ttl <= 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, entry := range c.data {
		if now.After(entry.expires) {
			delete(c.data, key)
			removed++
		}
	}
	return removed
}

// CachedGeocoder wraps a Geocoder with a Cache so the forecast page and its
// graph request do not resolve the same city twice. Misses are not cached;
// a typo should not be remembered for an hour.
type CachedGeocoder struct {
	backend Geocoder
	cache   *Cache
}

// NewCachedGeocoder creates a caching decorator over backend.
func NewCachedGeocoder(backend Geocoder, cache *Cache) *CachedGeocoder {
	return &CachedGeocoder{backend: backend, cache: cache}
}

// Locate returns the cached coordinate when fresh, resolving through the
// backend otherwise.
func (g *CachedGeocoder) Locate(ctx context.Context, city string) (weather.Coordinate, error) {
	if coord, ok := g.cache.Get(city); ok {
		return coord, nil
	}

	coord, err := g.backend.Locate(ctx, city)
	if err != nil {
		return weather.Coordinate{}, err
	}

	g.cache.Put(city, coord)
	return coord, nil
}
