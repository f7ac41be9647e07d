package cache

// Nop never stores anything.
type Nop[V any] struct{}

func (n *Nop[V]) Get(key string) (v V, ok bool) {
	return v, false
}

func (n *Nop[V]) Put(key string, val V, opts ...PutOption) {
}

func (n *Nop[V]) Delete(key string) {
}

func NewNop[V any]() *Nop[V] {
	return &Nop[V]{}
}

var _ Cache[any] = (*Nop[any])(nil)
