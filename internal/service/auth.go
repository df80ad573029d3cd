// Package service provides the registration, authorization and progress
// rules, delegating persistence to repositories.
package service

import (
	"context"

	"github.com/atinyakov/readsync/internal/apperr"
	"github.com/atinyakov/readsync/internal/keyspace"
	"github.com/atinyakov/readsync/internal/models"
)

// AuthRepository defines the persistence operations
// required by the authentication service.
type AuthRepository interface {
	// CreateUser stores a credential for a name that has none yet.
	CreateUser(ctx context.Context, name, key string) error
	// GetUser returns the stored credential for name.
	GetUser(ctx context.Context, name string) (models.User, error)
}

// AuthService registers users and checks their credentials.
type AuthService struct {
	// repo performs the data-layer operations.
	repo AuthRepository
}

// NewAuthService constructs a new AuthService using the provided repository.
func NewAuthService(repo AuthRepository) *AuthService {
	return &AuthService{repo: repo}
}

// RegisterUser creates the account username with credential password.
// The username must be a valid key field and the password non-empty.
func (s *AuthService) RegisterUser(ctx context.Context, username, password string) error {
	if !keyspace.IsValidKeyField(username) || password == "" {
		return apperr.New(apperr.KindInvalidRequest)
	}
	return s.repo.CreateUser(ctx, username, password)
}

// Authorize returns username if password matches its stored credential.
// Every failure, a backend error included, is reported as
// apperr.ErrUnauthorized; the cause stays attached for logging.
func (s *AuthService) Authorize(ctx context.Context, username, password string) (string, error) {
	if !keyspace.IsValidKeyField(username) {
		return "", apperr.New(apperr.KindUnauthorized)
	}

	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUnauthorized, err)
	}
	if user.Key != password {
		return "", apperr.New(apperr.KindUnauthorized)
	}
	return user.Name, nil
}
