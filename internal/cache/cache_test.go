// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package cache

import (
	"sync"
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("categories", []string{"Electronics", "Food"})

	v, ok := c.Get("categories")
	if !ok {
		t.Fatal("Get() miss, want hit")
	}
	cats, ok := v.([]string)
	if !ok || len(cats) != 2 {
		t.Errorf("Get() = %v, want 2 categories", v)
	}
}

func TestCacheMiss(t *testing.T) {
	c := New(time.Minute)
	if _, ok := c.Get("absent"); ok {
		t.Error("Get() hit for absent key")
	}

	stats := c.GetStats()
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New(time.Minute)
	c.SetWithTTL("k", "v", 10*time.Millisecond)

	if _, ok := c.Get("k"); !ok {
		t.Fatal("Get() miss before expiry")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("Get() hit after expiry")
	}
	if c.GetStats().Entries != 0 {
		t.Error("expired entry not evicted on access")
	}
}

func TestCacheClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if c.GetStats().Entries != 0 {
		t.Errorf("Entries = %d after Clear, want 0", c.GetStats().Entries)
	}
}

func TestCacheGetNeverEvictsFreshEntry(t *testing.T) {
	// A Get that finds an expired entry must not wipe a fresh value written
	// concurrently between its read and its eviction.
	c := New(time.Minute)

	for i := 0; i < 1000; i++ {
		c.SetWithTTL("k", "stale", -time.Second)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Get("k") // eviction path for the stale entry
		}()
		c.Set("k", "fresh")
		wg.Wait()

		v, ok := c.Get("k")
		if !ok || v != "fresh" {
			t.Fatalf("iteration %d: Get() = (%v, %v), fresh entry evicted", i, v, ok)
		}
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New(time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Set("k", "v")
		}()
		go func() {
			defer wg.Done()
			c.Get("k")
		}()
	}
	wg.Wait()
}
