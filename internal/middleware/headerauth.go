// Package middleware provides HTTP middlewares for authentication, logging
// and panic recovery.
package middleware

import (
	"context"
	"net/http"
	"unicode/utf8"

	"github.com/atinyakov/readsync/internal/apperr"
)

type ctxKey string

const userKey ctxKey = "user"

// Credential headers sent by clients on every protected request.
const (
	HeaderUser = "X-Auth-User"
	HeaderKey  = "X-Auth-Key"
)

// Authorizer checks a username/credential pair and returns the
// authenticated username.
type Authorizer interface {
	Authorize(ctx context.Context, username, password string) (string, error)
}

// HeaderAuth rejects requests whose credential headers are missing or do not
// match a registered user. Every rejection is rendered as Unauthorized.
//
// On success the authenticated username is stored in the request context,
// see GetUserIDFromContext.
func HeaderAuth(auth Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := r.Header.Get(HeaderUser)
			password := r.Header.Get(HeaderKey)
			if username == "" || password == "" || !utf8.ValidString(username) || !utf8.ValidString(password) {
				reject(w, r, apperr.New(apperr.KindUnauthorized))
				return
			}

			user, err := auth.Authorize(r.Context(), username, password)
			if err != nil {
				reject(w, r, apperr.Wrap(apperr.KindUnauthorized, err))
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request, err *apperr.Error) {
	RecordError(r.Context(), err)
	apperr.Write(w, err)
}

// GetUserIDFromContext extracts the authenticated username from the request
// context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
