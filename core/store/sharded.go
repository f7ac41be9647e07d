package store

import (
	"fmt"
	"slices"
	"time"

	"github.com/codewandler/cacheroo-go/internal/shard"
)

// Sharded spreads string keys over several independent Stores, each with its
// own lock, to reduce writer contention across unrelated keys. A key always
// lives in the same shard, so expiration behaves exactly as in Store.
type Sharded[V any] struct {
	shards []Store[string, V]
}

// NewSharded creates a Sharded store with n shards (16 if n <= 0). opts are
// applied to every shard; shard names are suffixed with their index.
func NewSharded[V any](n int, opts ...Option) Sharded[V] {
	n = shard.Count(n)
	base := newOptions(opts...)
	shards := make([]Store[string, V], n)
	for i := range shards {
		shards[i] = New[string, V](append(slices.Clone(opts), WithName(fmt.Sprintf("%s-%d", base.name, i)))...)
	}
	return Sharded[V]{shards: shards}
}

func (s Sharded[V]) shardFor(k string) Store[string, V] {
	return s.shards[shard.ForKey(k, len(s.shards))]
}

// Shards returns the number of shards.
func (s Sharded[V]) Shards() int { return len(s.shards) }

// Get returns a copy of the value stored for k.
func (s Sharded[V]) Get(k string) (V, bool) { return s.shardFor(k).Get(k) }

// Contains reports whether a value is stored for k.
func (s Sharded[V]) Contains(k string) bool { return s.shardFor(k).Contains(k) }

// Insert stores v for k without a lifetime; see Store.Insert.
func (s Sharded[V]) Insert(k string, v V) (V, bool) { return s.shardFor(k).Insert(k, v) }

// InsertWithLifetime stores v for k and schedules its removal after
// lifetime; see Store.InsertWithLifetime.
func (s Sharded[V]) InsertWithLifetime(k string, v V, lifetime time.Duration) (V, bool) {
	return s.shardFor(k).InsertWithLifetime(k, v, lifetime)
}

// Remove deletes the entry for k, cancels its expiration and returns its value.
func (s Sharded[V]) Remove(k string) (V, bool) { return s.shardFor(k).Remove(k) }

// Len sums the shard sizes. Shards are read one after another, so under
// concurrent writes the result is not a single point-in-time snapshot.
func (s Sharded[V]) Len() int {
	n := 0
	for _, st := range s.shards {
		n += st.Len()
	}
	return n
}

// Clear clears every shard.
func (s Sharded[V]) Clear() {
	for _, st := range s.shards {
		st.Clear()
	}
}
