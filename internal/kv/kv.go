// Package kv provides key-value backends addressed only by single-key
// get and put operations. Keys are never listed, iterated or deleted.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is a key-value backend with atomic single-key operations.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// PutIfAbsent stores value under key only if the key holds no value.
	// It reports whether the value was written.
	PutIfAbsent(ctx context.Context, key string, value []byte) (bool, error)
}
