package ttlcache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type movie struct {
	Title string
}

func TestCache_GetPut(t *testing.T) {
	c := New[*movie](time.Hour)

	// Miss
	_, ok := c.Get("detail:tt0133093")
	assert.False(t, ok, "empty cache should miss")

	// Put and hit
	m := &movie{Title: "The Matrix"}
	c.Put("detail:tt0133093", m)

	got, ok := c.Get("detail:tt0133093")
	require.True(t, ok, "should hit after put")
	assert.Same(t, m, got)

	// Second key
	c.Put("detail:tt0234215", &movie{Title: "The Matrix Reloaded"})
	got, ok = c.Get("detail:tt0234215")
	require.True(t, ok)
	assert.Equal(t, "The Matrix Reloaded", got.Title)

	// First key still there
	got, ok = c.Get("detail:tt0133093")
	require.True(t, ok, "first entry should still exist")
	assert.Equal(t, "The Matrix", got.Title)
}

func TestCache_Expiry(t *testing.T) {
	clock := newFakeClock()
	c := New[string](10*time.Second, WithClock(clock.Now))

	c.Put("k", "v")

	clock.Advance(9 * time.Second)
	got, ok := c.Get("k")
	require.True(t, ok, "should hit inside the TTL window")
	assert.Equal(t, "v", got)

	clock.Advance(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok, "should miss after TTL")

	// A second read of an expired key must also miss.
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestCache_ExpiryBoundary(t *testing.T) {
	clock := newFakeClock()
	c := New[string](time.Minute, WithClock(clock.Now))

	c.Put("k", "v")

	clock.Advance(time.Minute - time.Nanosecond)
	_, ok := c.Get("k")
	assert.True(t, ok, "one nanosecond before expiry is still valid")

	clock.Advance(time.Nanosecond)
	_, ok = c.Get("k")
	assert.False(t, ok, "now == expiresAt counts as expired")
}

func TestCache_Overwrite(t *testing.T) {
	clock := newFakeClock()
	c := New[string](10*time.Second, WithClock(clock.Now))

	c.Put("k", "v1")
	clock.Advance(8 * time.Second)
	c.Put("k", "v2")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v2", got)

	// Overwrite resets the expiry as well as the value.
	clock.Advance(8 * time.Second)
	got, ok = c.Get("k")
	require.True(t, ok, "overwrite should extend expiry")
	assert.Equal(t, "v2", got)
}

func TestCache_KeyIsolation(t *testing.T) {
	c := New[string](time.Hour)

	c.Put("search:batman:1", "page one")

	_, ok := c.Get("search:batman:2")
	assert.False(t, ok, "different page must not share an entry")
	_, ok = c.Get("SEARCH:BATMAN:1")
	assert.False(t, ok, "keys are compared exactly")
}

func TestCache_NonPositiveTTL(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Second} {
		t.Run(ttl.String(), func(t *testing.T) {
			c := New[string](ttl)
			assert.NotPanics(t, func() { c.Put("k", "v") })

			_, ok := c.Get("k")
			assert.False(t, ok, "non-positive TTL caches nothing")
			assert.Equal(t, 0, c.Len())
		})
	}
}

func TestCache_Delete(t *testing.T) {
	c := New[string](time.Hour)

	c.Put("k", "v")
	c.Delete("k")

	_, ok := c.Get("k")
	assert.False(t, ok)

	assert.NotPanics(t, func() { c.Delete("missing") })
}

func TestCache_LenAndRemoveExpired(t *testing.T) {
	clock := newFakeClock()
	c := New[int](time.Minute, WithClock(clock.Now))

	c.Put("a", 1)
	c.Put("b", 2)
	clock.Advance(30 * time.Second)
	c.Put("c", 3)
	assert.Equal(t, 3, c.Len())

	clock.Advance(31 * time.Second)
	assert.Equal(t, 1, c.Len(), "a and b expired")

	removed := c.RemoveExpired()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, c.RemoveExpired(), "nothing left to remove")

	got, ok := c.Get("c")
	require.True(t, ok)
	assert.Equal(t, 3, got)
}

func TestCache_GetDoesNotDropFreshReplacement(t *testing.T) {
	clock := newFakeClock()
	c := New[string](time.Minute, WithClock(clock.Now), WithShards(1))

	c.Put("k", "old")
	clock.Advance(2 * time.Minute)
	c.Put("k", "new")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestCache_SingleShard(t *testing.T) {
	c := New[string](time.Hour, WithShards(1))
	for i := 0; i < 50; i++ {
		c.Put(fmt.Sprintf("k%d", i), fmt.Sprintf("v%d", i))
	}
	assert.Equal(t, 50, c.Len())

	got, ok := c.Get("k42")
	require.True(t, ok)
	assert.Equal(t, "v42", got)
}

func TestCache_TTL(t *testing.T) {
	assert.Equal(t, 5*time.Minute, New[string](5*time.Minute).TTL())
}

func TestCache_ShawshankScenario(t *testing.T) {
	clock := newFakeClock()
	c := New[*movie](60*time.Second, WithClock(clock.Now))

	stored := &movie{Title: "The Shawshank Redemption"}
	c.Put("detail:tt0111161", stored)

	clock.Advance(30 * time.Second)
	got, ok := c.Get("detail:tt0111161")
	require.True(t, ok)
	assert.Same(t, stored, got)
	assert.Equal(t, "The Shawshank Redemption", got.Title)

	clock.Advance(31 * time.Second)
	_, ok = c.Get("detail:tt0111161")
	assert.False(t, ok)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	clock := newFakeClock()
	c := New[string](time.Minute, WithClock(clock.Now))

	const (
		workers = 8
		ops     = 1000
		keys    = 10
	)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < ops; i += workers {
				key := fmt.Sprintf("key-%d", i%keys)
				if i%3 == 0 {
					c.Put(key, "value-for-"+key)
					continue
				}
				if i%50 == 0 {
					clock.Advance(time.Second)
				}
				if got, ok := c.Get(key); ok {
					assert.Equal(t, "value-for-"+key, got, "foreign value under %s", key)
				}
			}
		}(w)
	}
	wg.Wait()

	for i := 0; i < keys; i++ {
		key := fmt.Sprintf("key-%d", i)
		if got, ok := c.Get(key); ok {
			assert.Equal(t, "value-for-"+key, got)
		}
	}
}
