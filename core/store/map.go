package store

import "time"

// Map is the operation set shared by Store and Sharded.
type Map[K comparable, V any] interface {
	Get(k K) (V, bool)
	Contains(k K) bool
	Len() int
	Insert(k K, v V) (V, bool)
	InsertWithLifetime(k K, v V, lifetime time.Duration) (V, bool)
	Remove(k K) (V, bool)
	Clear()
}

var (
	_ Map[string, int] = Store[string, int]{}
	_ Map[string, int] = Sharded[int]{}
)
