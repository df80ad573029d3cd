// Package http provides the HTTP handlers for user registration,
// authorization checks and progress synchronization.
package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/readsync/internal/apperr"
)

// AuthService defines the authentication operations
// required by the HTTP handlers and the auth middleware.
type AuthService interface {
	// RegisterUser creates a new account.
	RegisterUser(ctx context.Context, username, password string) error
	// Authorize returns the username if the credential matches.
	Authorize(ctx context.Context, username, password string) (string, error)
}

// AuthHandler handles HTTP requests for user registration and authorization.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// CreateUserRequest represents the JSON payload for user registration.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Create handles POST /users/create.
// It registers the user and answers 201 with the username.
func (h *AuthHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, apperr.Wrap(apperr.KindInvalidRequest, err))
		return
	}

	if err := h.AuthService.RegisterUser(r.Context(), req.Username, req.Password); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"username": req.Username})
}

// Auth handles GET /users/auth. The auth middleware has already verified
// the credentials by the time it runs.
func (h *AuthHandler) Auth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"authorized": "OK"})
}
