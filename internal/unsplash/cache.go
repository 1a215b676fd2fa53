package unsplash

import "time"

// Cache holds resolved image URLs per city with a TTL. Negative
// results (empty URL) are cached too, so a city that resolves to the
// fallback is not retried on every race in that city.
type Cache struct {
	URLs     map[string]string    // city|state → image URL
	CachedAt map[string]time.Time // key → cache time
	TTL      time.Duration
}

// NewCache creates an image URL cache with a 24-hour TTL, which
// comfortably covers a single run.
func NewCache() *Cache {
	return &Cache{
		URLs:     make(map[string]string),
		CachedAt: make(map[string]time.Time),
		TTL:      24 * time.Hour,
	}
}

// Get retrieves a cached URL if present and not expired. The second
// return value distinguishes a cached empty result from a miss.
func (c *Cache) Get(city, state string) (string, bool) {
	key := cacheKey(city, state)

	u, exists := c.URLs[key]
	if !exists {
		return "", false
	}

	cachedTime, hasTime := c.CachedAt[key]
	if !hasTime || time.Since(cachedTime) > c.TTL {
		delete(c.URLs, key)
		delete(c.CachedAt, key)
		return "", false
	}

	return u, true
}

// Set stores a resolved URL for a city.
func (c *Cache) Set(city, state, url string) {
	key := cacheKey(city, state)
	c.URLs[key] = url
	c.CachedAt[key] = time.Now()
}

// Size returns the number of cached entries.
func (c *Cache) Size() int {
	return len(c.URLs)
}

func cacheKey(city, state string) string {
	return city + "|" + state
}
