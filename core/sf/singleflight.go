package sf

import "golang.org/x/sync/singleflight"

// Group deduplicates concurrent function calls with the same key.
// Only the first caller executes the function; others wait and receive
// the same result.
type Group[V any] struct {
	group singleflight.Group
}

// Do executes fn for the given key, deduplicating concurrent calls.
// If a call is already in-flight for this key, Do blocks until it completes
// and returns the same result. shared reports whether the result was handed
// to more than one caller.
func (g *Group[V]) Do(key string, fn func() (V, error)) (v V, shared bool, err error) {
	out, err, shared := g.group.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		return v, shared, err
	}
	v, _ = out.(V)
	return v, shared, nil
}

// Result holds the outcome of a DoChan call.
type Result[V any] struct {
	Val    V
	Err    error
	Shared bool
}

// DoChan is like Do but returns a channel that receives the result once it
// is ready. The channel is buffered, so callers may stop listening.
func (g *Group[V]) DoChan(key string, fn func() (V, error)) <-chan Result[V] {
	src := g.group.DoChan(key, func() (any, error) {
		return fn()
	})
	out := make(chan Result[V], 1)
	go func() {
		r := <-src
		v, _ := r.Val.(V)
		out <- Result[V]{Val: v, Err: r.Err, Shared: r.Shared}
	}()
	return out
}

// Forget makes the next Do for key execute fn even if a call is in flight.
func (g *Group[V]) Forget(key string) {
	g.group.Forget(key)
}

// New creates a new Group for values of type V.
func New[V any]() *Group[V] {
	return &Group[V]{}
}
