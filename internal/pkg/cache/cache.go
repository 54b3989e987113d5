package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	tags      []string
	expiresAt time.Time
}

// Cache is an in-process TTL cache with tag-based invalidation. Tags
// let callers drop every derived value for a shift (fulfillment,
// listings) in one call when an assignment changes.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	tagIndex   map[string]map[string]struct{}
	defaultTTL time.Duration
	now        func() time.Time
}

func New(defaultTTL time.Duration) *Cache {
	return &Cache{
		entries:    make(map[string]entry),
		tagIndex:   make(map[string]map[string]struct{}),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		c.removeLocked(key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores a value under key with the default TTL, indexed by tags.
func (c *Cache) Set(key string, value interface{}, tags ...string) {
	c.SetWithTTL(key, value, c.defaultTTL, tags...)
}

func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(key)
	c.entries[key] = entry{
		value:     value,
		tags:      tags,
		expiresAt: c.now().Add(ttl),
	}
	for _, tag := range tags {
		if c.tagIndex[tag] == nil {
			c.tagIndex[tag] = make(map[string]struct{})
		}
		c.tagIndex[tag][key] = struct{}{}
	}
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(key)
}

// InvalidateTag removes every entry indexed under the tag.
func (c *Cache) InvalidateTag(tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.tagIndex[tag] {
		c.removeLocked(key)
	}
}

// Sweep drops expired entries. Intended to run on a schedule.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			c.removeLocked(key)
			removed++
		}
	}
	return removed
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) removeLocked(key string) {
	e, ok := c.entries[key]
	if !ok {
		return
	}
	delete(c.entries, key)
	for _, tag := range e.tags {
		delete(c.tagIndex[tag], key)
		if len(c.tagIndex[tag]) == 0 {
			delete(c.tagIndex, tag)
		}
	}
}
