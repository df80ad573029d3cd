package http

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/readsync/internal/apperr"
	"github.com/atinyakov/readsync/internal/middleware"
	"github.com/atinyakov/readsync/internal/models"
)

// SyncService defines the progress operations required by the SyncHandler.
type SyncService interface {
	// UpdateProgress stores upd for user and returns the stored record.
	UpdateProgress(ctx context.Context, user string, upd models.ProgressUpdate) (models.ProgressState, error)
	// GetProgress returns the stored record, or nil if there is none.
	GetProgress(ctx context.Context, user, document string) (*models.ProgressState, error)
}

// SyncHandler handles HTTP requests for progress synchronization.
type SyncHandler struct {
	SyncService SyncService
}

// UpdateProgressRequest is the body of PUT /syncs/progress.
// Pointer fields are required; device_id is optional.
type UpdateProgressRequest struct {
	Document   string   `json:"document"`
	Percentage *float64 `json:"percentage"`
	Progress   *string  `json:"progress"`
	Device     *string  `json:"device"`
	DeviceID   string   `json:"device_id"`
}

// UpdateProgress handles PUT /syncs/progress.
func (h *SyncHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUserIDFromContext(ctx)

	var req UpdateProgressRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, apperr.Wrap(apperr.KindInvalidRequest, err))
		return
	}
	if req.Percentage == nil || req.Progress == nil || req.Device == nil {
		writeError(w, r, apperr.New(apperr.KindInvalidRequest))
		return
	}

	state, err := h.SyncService.UpdateProgress(ctx, user, models.ProgressUpdate{
		Document:   req.Document,
		Percentage: *req.Percentage,
		Progress:   *req.Progress,
		Device:     *req.Device,
		DeviceID:   req.DeviceID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"document":  state.Document,
		"timestamp": state.Timestamp,
	})
}

// GetProgress handles GET /syncs/progress/{document}. A document without
// stored progress yields only its identifier.
func (h *SyncHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUserIDFromContext(ctx)

	document := chi.URLParam(r, "document")
	// chi matches against RawPath when the path carries escapes.
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(document)
		if err != nil {
			writeError(w, r, apperr.Wrap(apperr.KindDocumentNotProvided, err))
			return
		}
		document = unescaped
	}

	state, err := h.SyncService.GetProgress(ctx, user, document)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if state == nil {
		writeJSON(w, http.StatusOK, map[string]string{"document": document})
		return
	}
	writeJSON(w, http.StatusOK, state)
}
