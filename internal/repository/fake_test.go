package repository

import (
	"context"

	"github.com/atinyakov/readsync/internal/kv"
)

// fakeStore delegates to a MemoryStore unless a hook overrides the call.
type fakeStore struct {
	mem             *kv.MemoryStore
	GetFunc         func(ctx context.Context, key string) ([]byte, error)
	PutFunc         func(ctx context.Context, key string, value []byte) error
	PutIfAbsentFunc func(ctx context.Context, key string, value []byte) (bool, error)
}

func newFakeStore() *fakeStore {
	return &fakeStore{mem: kv.NewMemoryStore()}
}

func (f *fakeStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx, key)
	}
	return f.mem.Get(ctx, key)
}

func (f *fakeStore) Put(ctx context.Context, key string, value []byte) error {
	if f.PutFunc != nil {
		return f.PutFunc(ctx, key, value)
	}
	return f.mem.Put(ctx, key, value)
}

func (f *fakeStore) PutIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	if f.PutIfAbsentFunc != nil {
		return f.PutIfAbsentFunc(ctx, key, value)
	}
	return f.mem.PutIfAbsent(ctx, key, value)
}
