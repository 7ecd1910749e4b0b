// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package searchcache memoizes provider calls. A Cache holds values for a
// fixed TTL and collapses concurrent computations of the same key into one.
// CachedSearcher and CachedLookup wrap the provider client with it.
package searchcache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value   V
	expires time.Time
}

// Cache is a TTL cache safe for concurrent use. Errors from compute
// functions are returned to every waiting caller and never stored.
type Cache[V any] struct {
	ttl   time.Duration
	clock clockwork.Clock

	mu        sync.Mutex
	entries   map[string]entry[V]
	nextPrune time.Time
	group     singleflight.Group
}

// New returns a cache whose entries live for ttl. A nil clock uses the
// real clock. A non-positive ttl disables storage but still deduplicates
// concurrent computations.
func New[V any](ttl time.Duration, clock clockwork.Clock) *Cache[V] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache[V]{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]entry[V]),
	}
}

// Get returns the live value for key.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !c.clock.Now().Before(e.expires) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores v under key for the cache TTL. At most once per TTL it also
// sweeps expired entries, so keys that are never read again do not pile up.
func (c *Cache[V]) Set(key string, v V) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if !now.Before(c.nextPrune) {
		c.pruneLocked(now)
		c.nextPrune = now.Add(c.ttl)
	}
	c.entries[key] = entry[V]{value: v, expires: now.Add(c.ttl)}
}

// GetOrCompute returns the cached value for key or runs compute once for
// all concurrent callers and caches its result. The computation runs with
// the context of the caller that started it.
func (c *Cache[V]) GetOrCompute(ctx context.Context, key string, compute func(context.Context) (V, error)) (V, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}

	res, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := compute(ctx)
		if err != nil {
			return v, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}
	return res.(V), false, nil
}

// Len returns the number of stored entries, expired ones included until
// they are next read or swept.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Prune drops expired entries and returns how many were removed.
func (c *Cache[V]) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pruneLocked(c.clock.Now())
}

func (c *Cache[V]) pruneLocked(now time.Time) int {
	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}
