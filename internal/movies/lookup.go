package movies

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/vmunix/moviecache/internal/ttlcache"
)

// lookup is the cache-or-fetch step for one kind of request.
type lookup[V any] struct {
	kind  string
	cache *ttlcache.Cache[V]
	group *singleflight.Group // nil: concurrent misses fetch independently
	log   *slog.Logger
}

// get returns the cached value for key, or calls fetch and caches its result.
// Errors from fetch are returned as-is and never cached.
func (l *lookup[V]) get(ctx context.Context, key string, fetch func(context.Context) (V, error)) (V, error) {
	if v, ok := l.cache.Get(key); ok {
		l.log.Debug("cache hit", "kind", l.kind, "key", key)
		return v, nil
	}
	l.log.Debug("cache miss, calling upstream", "kind", l.kind, "key", key)

	if l.group == nil {
		return l.fill(ctx, key, fetch)
	}
	return l.shared(ctx, key, fetch)
}

func (l *lookup[V]) fill(ctx context.Context, key string, fetch func(context.Context) (V, error)) (V, error) {
	v, err := fetch(ctx)
	if err != nil {
		var zero V
		return zero, err
	}
	l.cache.Put(key, v)
	return v, nil
}

// shared collapses concurrent misses for key into one upstream call.
// The call ignores any single caller's cancellation. Each caller still stops
// waiting when its own ctx ends.
func (l *lookup[V]) shared(ctx context.Context, key string, fetch func(context.Context) (V, error)) (V, error) {
	ch := l.group.DoChan(key, func() (any, error) {
		// Another caller may have filled the entry while we were queued.
		if v, ok := l.cache.Get(key); ok {
			return v, nil
		}
		return l.fill(context.WithoutCancel(ctx), key, fetch)
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		if res.Shared {
			l.log.Debug("shared in-flight fetch", "kind", l.kind, "key", key)
		}
		return res.Val.(V), nil
	}
}
