// Package sf provides a generic single-flight mechanism for deduplicating
// concurrent function calls with the same key.
//
// If multiple goroutines call [Group.Do] with the same key concurrently,
// only the first call executes the function; the others block until it
// completes and receive the same result. It is used to prevent thundering
// herds on cache misses.
//
//	g := sf.New[*User]()
//	user, _, err := g.Do("user:123", func() (*User, error) {
//	    return db.GetUser(ctx, "123")
//	})
package sf
