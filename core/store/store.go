package store

import (
	"log/slog"
	"sync"
	"time"
)

// Store is a concurrent map with optional per-entry lifetimes.
//
// A Store is a handle: copies (and Clone) refer to the same entries, so it
// can be passed by value to any number of goroutines. Use New to create one;
// the zero value is not usable.
type Store[K comparable, V any] struct {
	shared *shared[K, V]
}

type shared[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]*entry[V]

	scheduler Scheduler
	log       *slog.Logger
	metrics   Metrics
}

// entry is never mutated after it is published to the map, apart from the
// expiration handle which is set before publication. Its address is the
// identity an expiration timer checks against.
type entry[V any] struct {
	value      V
	expiration Timer
}

func (e *entry[V]) abortExpiration() V {
	if e.expiration != nil {
		e.expiration.Stop()
	}
	return e.value
}

// New creates an empty Store. The underlying map is allocated on first write.
func New[K comparable, V any](opts ...Option) Store[K, V] {
	o := newOptions(opts...)
	return Store[K, V]{
		shared: &shared[K, V]{
			scheduler: o.scheduler,
			log:       o.log.With(slog.String("store", o.name)),
			metrics:   o.metrics,
		},
	}
}

// Clone returns another handle to the same store.
func (s Store[K, V]) Clone() Store[K, V] { return s }

// Get returns a copy of the value stored for k.
func (s Store[K, V]) Get(k K) (v V, ok bool) {
	sh := s.shared
	sh.mu.RLock()
	e, ok := sh.items[k]
	if ok {
		v = e.value
	}
	sh.mu.RUnlock()

	if ok {
		sh.metrics.Hit()
	} else {
		sh.metrics.Miss()
	}
	return v, ok
}

// Contains reports whether a value is stored for k.
func (s Store[K, V]) Contains(k K) bool {
	sh := s.shared
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	_, ok := sh.items[k]
	return ok
}

// Len returns the number of entries.
func (s Store[K, V]) Len() int {
	sh := s.shared
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return len(sh.items)
}

// Insert stores v for k without a lifetime and returns the previous value,
// if any. A pending expiration of the previous entry is cancelled.
func (s Store[K, V]) Insert(k K, v V) (old V, replaced bool) {
	return s.insert(k, &entry[V]{value: v}, 0, false)
}

// InsertWithLifetime stores v for k and schedules its removal after lifetime.
// A lifetime <= 0 removes the entry as soon as the scheduler runs the
// expiration. The previous value, if any, is returned and its pending
// expiration is cancelled.
func (s Store[K, V]) InsertWithLifetime(k K, v V, lifetime time.Duration) (old V, replaced bool) {
	return s.insert(k, &entry[V]{value: v}, lifetime, true)
}

// Remove deletes the entry for k, cancels its expiration and returns its value.
func (s Store[K, V]) Remove(k K) (v V, ok bool) {
	sh := s.shared
	sh.mu.Lock()
	e, ok := sh.items[k]
	if ok {
		delete(sh.items, k)
		v = e.abortExpiration()
	}
	sh.mu.Unlock()

	if ok {
		sh.metrics.Removed()
		sh.metrics.EntriesDelta(-1)
	}
	return v, ok
}

// Clear removes all entries and cancels every pending expiration.
func (s Store[K, V]) Clear() {
	sh := s.shared
	sh.mu.Lock()
	items := sh.items
	sh.items = nil
	for _, e := range items {
		e.abortExpiration()
	}
	sh.mu.Unlock()

	if n := len(items); n > 0 {
		sh.metrics.EntriesDelta(-n)
	}
}

func (s Store[K, V]) insert(k K, e *entry[V], lifetime time.Duration, expires bool) (old V, replaced bool) {
	sh := s.shared
	sh.mu.Lock()
	if sh.items == nil {
		sh.items = make(map[K]*entry[V])
	}
	if expires {
		// Scheduled under the lock: the action cannot observe the map before
		// e is published, even for a zero lifetime.
		e.expiration = sh.scheduler.AfterFunc(lifetime, func() {
			sh.expire(k, e)
		})
	}
	prev, replaced := sh.items[k]
	sh.items[k] = e
	if replaced {
		old = prev.abortExpiration()
	}
	sh.mu.Unlock()

	sh.metrics.Inserted(expires)
	if replaced {
		sh.metrics.Replaced()
	} else {
		sh.metrics.EntriesDelta(1)
	}
	return old, replaced
}

// expire removes k only if it still maps to e. Cancellation is best effort,
// so a timer may fire after its entry was replaced or removed.
func (sh *shared[K, V]) expire(k K, e *entry[V]) {
	sh.mu.Lock()
	cur, ok := sh.items[k]
	current := ok && cur == e
	if current {
		delete(sh.items, k)
	}
	sh.mu.Unlock()

	if !current {
		sh.metrics.StaleExpiration()
		sh.log.Debug("stale expiration ignored", slog.Any("key", k))
		return
	}

	sh.metrics.Expired()
	sh.metrics.EntriesDelta(-1)
	sh.log.Debug("entry expired", slog.Any("key", k))
}
