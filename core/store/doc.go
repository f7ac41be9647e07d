// Package store provides a concurrent in-memory map whose entries can expire
// after a per-entry lifetime.
//
// # Usage
//
//	s := store.New[string, *Session]()
//
//	s.Insert("static", sess)                           // never expires
//	s.InsertWithLifetime("token", sess, 5*time.Minute) // removed after 5m
//
//	if sess, ok := s.Get("token"); ok {
//	    // use sess
//	}
//
// A [Store] is a handle. Copies share the same entries, so a Store can be
// handed to goroutines by value.
//
// # Expiration
//
// Every entry inserted with [Store.InsertWithLifetime] owns a [Timer] obtained
// from the [Scheduler]. When the entry is replaced, removed or cleared, the
// timer is stopped before the entry is dropped. Stopping is best effort: a
// timer may already be running when it is stopped. The expiration action
// therefore removes the key only if it still maps to the entry the timer was
// created for, so a late timer never deletes a newer value stored under the
// same key.
//
// A lifetime of zero (or less) expires the entry as soon as the scheduler runs
// the action; the value may be observed until then.
//
// Expired, removed and never-inserted keys are indistinguishable to callers.
//
// # Locking
//
// A Store guards its map with one [sync.RWMutex]. Reads take the shared lock,
// writes and expirations take the exclusive lock for a single map operation.
// Logging and metrics happen after the lock is released. [Sharded] spreads
// string keys over several Stores when writer contention matters.
//
// # Time
//
// By default timers run on the runtime clock. Use [WithClock] with a
// clockwork fake clock to control time in tests:
//
//	clock := clockwork.NewFakeClock()
//	s := store.New[string, int](store.WithClock(clock))
//	s.InsertWithLifetime("k", 1, time.Second)
//	clock.Advance(time.Second) // expiration runs on its own goroutine
package store
