package middleware

import (
	"fmt"
	"net/http"

	"github.com/atinyakov/readsync/internal/apperr"
)

// Recover turns a panic in a handler into an UnknownServerError response.
// http.ErrAbortHandler is re-panicked so the server aborts the connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err := apperr.Wrap(apperr.KindUnknownServer, fmt.Errorf("panic: %v", rec))
			RecordError(r.Context(), err)
			apperr.Write(w, err)
		}()
		next.ServeHTTP(w, r)
	})
}
