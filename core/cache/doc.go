// Package cache provides a small key-value cache interface with TTL support
// on top of package store.
//
// # Implementations
//
// [Expiring] stores entries in a [store.Map]. Entries put with [WithTTL] are
// removed by a per-entry timer; overwriting or deleting an entry cancels its
// timer.
//
//	users := cache.NewExpiring[*User]()
//
//	users.Put("user:123", user, cache.WithTTL(5*time.Minute))
//	if user, ok := users.Get("user:123"); ok {
//	    // use user
//	}
//
// [Nop] never stores anything and is useful to disable caching.
//
// # Read-through
//
// [Loading] fills misses from a loader and collapses concurrent misses for
// the same key into a single load:
//
//	l := cache.NewLoading(users, time.Minute, func(ctx context.Context, key string) (*User, error) {
//	    return db.GetUser(ctx, key)
//	})
//	user, err := l.Get(ctx, "user:123")
package cache
