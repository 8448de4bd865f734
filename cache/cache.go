// Package cache is a small in-memory TTL cache used in front of the
// backend's reference-data endpoints.
package cache

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type entry struct {
	data      interface{}
	expiresAt time.Time
}

// Cache is safe for concurrent use by multiple request handlers.
type Cache struct {
	store sync.Map
	ttl   time.Duration
}

// New returns a cache whose entries expire after ttl. A zero or negative
// ttl disables caching entirely (every Get misses).
func New(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	val, ok := c.store.Load(key)
	if !ok {
		return nil, false
	}

	e := val.(entry)
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		logrus.WithField("key", key).Debug("cache entry expired")
		return nil, false
	}
	return e.data, true
}

func (c *Cache) Set(key string, value interface{}) {
	if c.ttl <= 0 {
		return
	}
	c.store.Store(key, entry{data: value, expiresAt: time.Now().Add(c.ttl)})
}

// Clear drops a single key. Used when a configuration write invalidates
// cached reference data.
func (c *Cache) Clear(key string) {
	c.store.Delete(key)
}
