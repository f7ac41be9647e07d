package cache

import (
	"github.com/codewandler/cacheroo-go/core/store"
)

// Expiring is a Cache backed by a store.Map. Entries put with WithTTL are
// removed by a timer once their TTL elapses.
type Expiring[V any] struct {
	m store.Map[string, V]
}

// NewExpiring creates an Expiring cache on a single-lock store.Store.
func NewExpiring[V any](opts ...store.Option) *Expiring[V] {
	return NewExpiringFrom[V](store.New[string, V](opts...))
}

// NewExpiringFrom creates an Expiring cache on an existing map, e.g. a
// store.Sharded or a Store shared with other components.
func NewExpiringFrom[V any](m store.Map[string, V]) *Expiring[V] {
	return &Expiring[V]{m: m}
}

func (c *Expiring[V]) Get(key string) (V, bool) { return c.m.Get(key) }

func (c *Expiring[V]) Put(key string, val V, opts ...PutOption) {
	o := newPutOptions(opts...)
	if o.TTL > 0 {
		c.m.InsertWithLifetime(key, val, o.TTL)
		return
	}
	c.m.Insert(key, val)
}

func (c *Expiring[V]) Delete(key string) { c.m.Remove(key) }

func (c *Expiring[V]) Len() int { return c.m.Len() }

// Purge drops all entries.
func (c *Expiring[V]) Purge() { c.m.Clear() }

var _ Cache[any] = (*Expiring[any])(nil)
