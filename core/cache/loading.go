package cache

import (
	"context"
	"time"

	"github.com/codewandler/cacheroo-go/core/sf"
)

// LoadFunc loads the value for a key on a cache miss.
type LoadFunc[V any] func(ctx context.Context, key string) (V, error)

// Loading wraps a Cache with read-through loading. Concurrent misses for the
// same key share a single call to the loader. Loader errors are returned to
// every waiting caller and nothing is cached.
type Loading[V any] struct {
	cache Cache[V]
	load  LoadFunc[V]
	ttl   time.Duration
	group *sf.Group[V]
}

// NewLoading creates a Loading cache. Loaded values are stored with ttl
// (no lifetime if ttl <= 0).
func NewLoading[V any](c Cache[V], ttl time.Duration, load LoadFunc[V]) *Loading[V] {
	return &Loading[V]{
		cache: c,
		load:  load,
		ttl:   ttl,
		group: sf.New[V](),
	}
}

// Get returns the cached value for key, loading it on a miss.
//
// The load is shared by every caller waiting on key, so it runs detached
// from the cancellation of the caller that started it. Each caller stops
// waiting when its own ctx is done; the load keeps running for the others.
func (l *Loading[V]) Get(ctx context.Context, key string) (v V, err error) {
	if v, ok := l.cache.Get(key); ok {
		return v, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(key, func() (V, error) {
		// Another flight may have filled the entry in the meantime.
		if v, ok := l.cache.Get(key); ok {
			return v, nil
		}
		v, err := l.load(loadCtx, key)
		if err != nil {
			return v, err
		}
		l.cache.Put(key, v, WithTTL(l.ttl))
		return v, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return v, ctx.Err()
	}
}

// Invalidate drops key so the next Get loads it again.
func (l *Loading[V]) Invalidate(key string) { l.cache.Delete(key) }
