package service

import (
	"context"
	"time"

	"github.com/atinyakov/readsync/internal/apperr"
	"github.com/atinyakov/readsync/internal/keyspace"
	"github.com/atinyakov/readsync/internal/models"
)

// SyncRepository defines the persistence operations
// required by the SyncService.
type SyncRepository interface {
	UpdateProgress(ctx context.Context, user string, state models.ProgressState) error
	// GetProgress returns nil without error when nothing is stored.
	GetProgress(ctx context.Context, user, document string) (*models.ProgressState, error)
}

// SyncService stores and returns reading progress.
type SyncService struct {
	repo SyncRepository
	now  func() time.Time
}

// NewSyncService constructs a new SyncService using the provided repository.
func NewSyncService(repo SyncRepository) *SyncService {
	return &SyncService{repo: repo, now: time.Now}
}

// UpdateProgress stamps upd with the current server time and stores it,
// replacing whatever was recorded for the document before.
func (s *SyncService) UpdateProgress(ctx context.Context, user string, upd models.ProgressUpdate) (models.ProgressState, error) {
	if !keyspace.IsValidKeyField(upd.Document) {
		return models.ProgressState{}, apperr.New(apperr.KindDocumentNotProvided)
	}

	state := models.ProgressState{
		Document:   upd.Document,
		Percentage: upd.Percentage,
		Progress:   upd.Progress,
		Device:     upd.Device,
		DeviceID:   upd.DeviceID,
		Timestamp:  s.now().Unix(),
	}
	if err := s.repo.UpdateProgress(ctx, user, state); err != nil {
		return models.ProgressState{}, err
	}
	return state, nil
}

// GetProgress returns the stored progress of document, or nil.
func (s *SyncService) GetProgress(ctx context.Context, user, document string) (*models.ProgressState, error) {
	if !keyspace.IsValidKeyField(document) {
		return nil, apperr.New(apperr.KindDocumentNotProvided)
	}
	return s.repo.GetProgress(ctx, user, document)
}
