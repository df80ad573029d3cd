package http

import (
	"encoding/json"
	"net/http"

	"github.com/atinyakov/readsync/internal/apperr"
	"github.com/atinyakov/readsync/internal/middleware"
)

// maxBodyBytes bounds request bodies; progress records are tiny.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError is the only way handlers report failures.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	middleware.RecordError(r.Context(), err)
	apperr.Write(w, err)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}
