package kv

import (
	"bytes"
	"context"
	"maps"

	"github.com/codewandler/cacheroo-go/core/store"
)

// MemStore keeps entries in a store.Map. Entries put with a TTL are removed
// by a timer; overwriting or deleting an entry cancels it.
type MemStore struct {
	data store.Map[string, Entry]
}

func NewMemStore(opts ...store.Option) *MemStore {
	return NewMemStoreFrom(store.New[string, Entry](opts...))
}

func NewMemStoreFrom(m store.Map[string, Entry]) *MemStore {
	return &MemStore{data: m}
}

func (m *MemStore) Put(ctx context.Context, key string, entry Entry, opts PutOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry = cloneEntry(entry)
	if opts.TTL > 0 {
		m.data.InsertWithLifetime(key, entry, opts.TTL)
	} else {
		m.data.Insert(key, entry)
	}
	return nil
}

func (m *MemStore) Get(ctx context.Context, key string) (entry Entry, err error) {
	if err = ctx.Err(); err != nil {
		return entry, err
	}

	entry, ok := m.data.Get(key)
	if !ok {
		return entry, ErrNotFound
	}

	return cloneEntry(entry), nil
}

func (m *MemStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.data.Remove(key)
	return nil
}

// Len returns the number of live entries.
func (m *MemStore) Len() int { return m.data.Len() }

// cloneEntry detaches the entry from caller-owned memory.
func cloneEntry(e Entry) Entry {
	return Entry{
		Data: bytes.Clone(e.Data),
		Meta: maps.Clone(e.Meta),
	}
}

var _ Store = (*MemStore)(nil)
