package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atinyakov/readsync/internal/apperr"
	"github.com/atinyakov/readsync/internal/keyspace"
	"github.com/atinyakov/readsync/internal/kv"
	"github.com/atinyakov/readsync/internal/models"
)

// KVSyncRepository stores one progress record per (user, document).
type KVSyncRepository struct {
	store kv.Store
}

// NewKVSyncRepository creates a KVSyncRepository on top of store.
func NewKVSyncRepository(store kv.Store) *KVSyncRepository {
	return &KVSyncRepository{store: store}
}

// UpdateProgress replaces the record for (user, state.Document).
// The last write wins; nothing is merged.
func (r *KVSyncRepository) UpdateProgress(ctx context.Context, user string, state models.ProgressState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return apperr.Wrap(apperr.KindStore, fmt.Errorf("marshal progress: %w", err))
	}
	if err := r.store.Put(ctx, keyspace.DocumentKey(user, state.Document), payload); err != nil {
		return apperr.Wrap(apperr.KindStore, fmt.Errorf("put progress %s/%s: %w", user, state.Document, err))
	}
	return nil
}

// GetProgress returns the record for (user, document), or nil if none was
// ever written. A malformed stored payload is reported as a store error.
func (r *KVSyncRepository) GetProgress(ctx context.Context, user, document string) (*models.ProgressState, error) {
	payload, err := r.store.Get(ctx, keyspace.DocumentKey(user, document))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStore, fmt.Errorf("get progress %s/%s: %w", user, document, err))
	}

	var state models.ProgressState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, apperr.Wrap(apperr.KindStore, fmt.Errorf("decode progress %s/%s: %w", user, document, err))
	}
	return &state, nil
}
