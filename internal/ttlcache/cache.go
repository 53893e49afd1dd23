// Package ttlcache provides a generic, concurrency-safe in-memory cache with a
// single cache-wide time-to-live.
//
// Entries expire lazily: every Get compares the entry's absolute expiry
// against the clock, and an expired entry is removed on the miss. A Sweeper
// may additionally reclaim entries nobody reads again, but correctness never
// depends on it.
//
// Keys are spread over independently locked shards so lookups for unrelated
// keys do not contend on a single mutex.
package ttlcache

import (
	"hash/maphash"
	"sync"
	"time"
)

const defaultShards = 32

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// expired reports whether the entry is no longer valid at now.
// Valid iff now < expiresAt.
func (e entry[V]) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

type shard[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
}

// Cache maps string keys to values of type V with a uniform TTL.
// The zero value is not usable; construct with New.
type Cache[V any] struct {
	ttl    time.Duration
	now    func() time.Time
	seed   maphash.Seed
	shards []*shard[V]
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	now    func() time.Time
	shards int
}

// WithClock sets the time source used for expiry (for testing).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithShards sets the number of lock shards. Values below 1 are ignored.
func WithShards(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.shards = n
		}
	}
}

// New creates an empty cache whose entries live for ttl.
//
// A ttl <= 0 yields a cache that never holds anything: Put is a no-op and
// Get always misses.
func New[V any](ttl time.Duration, opts ...Option) *Cache[V] {
	o := options{now: time.Now, shards: defaultShards}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Cache[V]{
		ttl:    ttl,
		now:    o.now,
		seed:   maphash.MakeSeed(),
		shards: make([]*shard[V], o.shards),
	}
	for i := range c.shards {
		c.shards[i] = &shard[V]{entries: make(map[string]entry[V])}
	}
	return c
}

// TTL returns the cache-wide time-to-live.
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}

func (c *Cache[V]) shardFor(key string) *shard[V] {
	if len(c.shards) == 1 {
		return c.shards[0]
	}
	return c.shards[maphash.String(c.seed, key)%uint64(len(c.shards))]
}

// Get returns the value stored under key if it has not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	s := c.shardFor(key)

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return zero, false
	}
	now := c.now()
	if !e.expired(now) {
		return e.value, true
	}

	// Drop the stale entry unless a concurrent Put already replaced it.
	s.mu.Lock()
	if cur, ok := s.entries[key]; ok && cur.expired(now) {
		delete(s.entries, key)
	}
	s.mu.Unlock()

	return zero, false
}

// Put stores value under key, replacing any previous entry and its expiry.
func (c *Cache[V]) Put(key string, value V) {
	if c.ttl <= 0 {
		return
	}
	e := entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}

	s := c.shardFor(key)
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

// Delete removes key from the cache. Deleting a missing key is a no-op.
func (c *Cache[V]) Delete(key string) {
	s := c.shardFor(key)
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len returns the number of unexpired entries.
func (c *Cache[V]) Len() int {
	now := c.now()
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		for _, e := range s.entries {
			if !e.expired(now) {
				n++
			}
		}
		s.mu.RUnlock()
	}
	return n
}

// RemoveExpired deletes every expired entry and returns how many were removed.
// Shards are swept one at a time.
func (c *Cache[V]) RemoveExpired() int {
	now := c.now()
	removed := 0
	for _, s := range c.shards {
		s.mu.Lock()
		for k, e := range s.entries {
			if e.expired(now) {
				delete(s.entries, k)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}
