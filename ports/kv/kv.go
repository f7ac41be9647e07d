// Package kv defines a context-aware byte-oriented key-value port and an
// in-memory implementation with per-entry TTL.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned by Get for keys that were never stored,
	// were deleted, or whose TTL elapsed. The three cases are not told apart.
	ErrNotFound = errors.New("not found")
)

// Entry is the stored payload. MemStore copies Data and Meta on the way in
// and out, so callers may reuse their buffers.
type Entry struct {
	Data []byte
	Meta map[string]any
}

// PutOptions controls a single Put.
type PutOptions struct {
	// TTL removes the entry once it elapses. Zero or negative keeps the entry
	// until it is deleted or overwritten. Overwriting a key replaces its TTL;
	// the previous expiration never removes the newer entry.
	TTL time.Duration
}

// Store is a context-aware key-value store. Implementations return ctx.Err()
// for a cancelled context and ErrNotFound for absent keys.
type Store interface {
	Put(ctx context.Context, key string, entry Entry, opts PutOptions) error
	Get(ctx context.Context, key string) (entry Entry, err error)
	Delete(ctx context.Context, key string) error
}

// Put JSON-encodes v and stores it under key.
func Put[T any](ctx context.Context, store Store, key string, v T, opts PutOptions) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv: encode %s: %w", key, err)
	}
	return store.Put(ctx, key, Entry{Data: data}, opts)
}

// Get loads key and JSON-decodes it into a T.
func Get[T any](ctx context.Context, store Store, key string) (out T, err error) {
	entry, err := store.Get(ctx, key)
	if err != nil {
		return
	}
	if err = json.Unmarshal(entry.Data, &out); err != nil {
		return out, fmt.Errorf("kv: decode %s: %w", key, err)
	}
	return
}
