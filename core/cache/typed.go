package cache

// TypedCache is a typed view of an untyped cache. Several views with
// different value types can share one Cache[any].
type TypedCache[T any] interface {
	Put(key string, val T, opts ...PutOption)
	Get(key string) (T, bool)
	Delete(key string)
}

type typedCache[T any] struct {
	c Cache[any]
}

func NewTyped[T any](c Cache[any]) TypedCache[T] { return &typedCache[T]{c: c} }

// Get reports a miss when the stored value is not a T.
func (t *typedCache[T]) Get(key string) (out T, ok bool) {
	var v any
	v, ok = t.c.Get(key)
	if !ok {
		return out, false
	}

	if out, ok = v.(T); !ok {
		return out, false
	}
	return
}

func (t *typedCache[T]) Put(key string, val T, opts ...PutOption) {
	t.c.Put(key, val, opts...)
}

func (t *typedCache[T]) Delete(key string) {
	t.c.Delete(key)
}

var (
	_ TypedCache[any] = (*typedCache[any])(nil)
	_ Cache[int]      = (TypedCache[int])(nil)
)
