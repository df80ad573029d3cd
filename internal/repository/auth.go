// Package repository stores users and reading progress in a key-value backend.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/readsync/internal/apperr"
	"github.com/atinyakov/readsync/internal/keyspace"
	"github.com/atinyakov/readsync/internal/kv"
	"github.com/atinyakov/readsync/internal/models"
)

// KVAuthRepository stores user credentials.
type KVAuthRepository struct {
	store kv.Store
}

// NewKVAuthRepository creates a KVAuthRepository on top of store.
func NewKVAuthRepository(store kv.Store) *KVAuthRepository {
	return &KVAuthRepository{store: store}
}

// CreateUser stores the credential for name. It fails with
// apperr.ErrUsernameAlreadyRegistered if name already has one; an existing
// credential is never overwritten. name must satisfy keyspace.IsValidKeyField.
func (r *KVAuthRepository) CreateUser(ctx context.Context, name, key string) error {
	userKey := keyspace.UserKey(name)

	_, err := r.store.Get(ctx, userKey)
	switch {
	case err == nil:
		return apperr.New(apperr.KindUsernameAlreadyRegistered)
	case !errors.Is(err, kv.ErrNotFound):
		return apperr.Wrap(apperr.KindStore, fmt.Errorf("lookup user %s: %w", name, err))
	}

	// The conditional put catches a registration that raced past the read above.
	written, err := r.store.PutIfAbsent(ctx, userKey, []byte(key))
	if err != nil {
		return apperr.Wrap(apperr.KindStore, fmt.Errorf("create user %s: %w", name, err))
	}
	if !written {
		return apperr.New(apperr.KindUsernameAlreadyRegistered)
	}
	return nil
}

// GetUser returns the stored credential of name. An unknown user yields
// apperr.ErrUnauthorized, a backend failure apperr.ErrStore.
func (r *KVAuthRepository) GetUser(ctx context.Context, name string) (models.User, error) {
	key, err := r.store.Get(ctx, keyspace.UserKey(name))
	if errors.Is(err, kv.ErrNotFound) {
		return models.User{}, apperr.New(apperr.KindUnauthorized)
	}
	if err != nil {
		return models.User{}, apperr.Wrap(apperr.KindStore, fmt.Errorf("get user %s: %w", name, err))
	}
	return models.User{Name: name, Key: string(key)}, nil
}
