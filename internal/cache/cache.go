// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

// Package cache provides a small TTL cache for read-mostly API payloads
// such as the category list. Discovery results are request-scoped and are
// never cached here.
package cache

import (
	"sync"
	"time"
)

// Entry is a cached value with its expiry time.
type Entry struct {
	Value   interface{}
	Expires time.Time
}

// Cache is a thread-safe in-memory cache with a fixed default TTL.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration

	hits   uint64
	misses uint64
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// New creates a cache with the given default TTL.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
	}
}

// Get returns the cached value for key, or (nil, false) when absent or
// expired. Expired entries are evicted lazily on access.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && !time.Now().After(entry.Expires) {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return entry.Value, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Re-check under the write lock: a concurrent Set may have replaced
	// the expired entry with a fresh one since the read above.
	if entry, ok := c.entries[key]; ok {
		if !time.Now().After(entry.Expires) {
			c.hits++
			return entry.Value, true
		}
		delete(c.entries, key)
	}
	c.misses++
	return nil, false
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry{
		Value:   value,
		Expires: time.Now().Add(ttl),
	}
}

// Delete removes key from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
}

// GetStats returns a snapshot of cache statistics.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		Entries: len(c.entries),
	}
}
