package service

import (
	"context"
	"errors"
	"testing"

	"github.com/atinyakov/readsync/internal/apperr"
	"github.com/atinyakov/readsync/internal/models"
)

type mockAuthRepo struct {
	CreateUserFunc func(ctx context.Context, name, key string) error
	GetUserFunc    func(ctx context.Context, name string) (models.User, error)
}

func (m *mockAuthRepo) CreateUser(ctx context.Context, name, key string) error {
	return m.CreateUserFunc(ctx, name, key)
}

func (m *mockAuthRepo) GetUser(ctx context.Context, name string) (models.User, error) {
	return m.GetUserFunc(ctx, name)
}

func TestRegisterUser_Success(t *testing.T) {
	called := false
	repo := &mockAuthRepo{
		CreateUserFunc: func(ctx context.Context, name, key string) error {
			called = true
			if name != "carol" || key != "pw" {
				t.Errorf("CreateUser received (%q, %q); want (%q, %q)", name, key, "carol", "pw")
			}
			return nil
		},
	}
	svc := NewAuthService(repo)

	if err := svc.RegisterUser(context.Background(), "carol", "pw"); err != nil {
		t.Fatalf("RegisterUser returned error: %v", err)
	}
	if !called {
		t.Fatal("expected CreateUser to be called on repo")
	}
}

func TestRegisterUser_InvalidInput(t *testing.T) {
	repo := &mockAuthRepo{
		CreateUserFunc: func(ctx context.Context, name, key string) error {
			t.Errorf("repository reached with (%q, %q)", name, key)
			return nil
		},
	}
	svc := NewAuthService(repo)

	cases := []struct{ username, password string }{
		{"", "pw"},
		{"a:b", "pw"},
		{"alice", ""},
	}
	for _, c := range cases {
		err := svc.RegisterUser(context.Background(), c.username, c.password)
		if !errors.Is(err, apperr.ErrInvalidRequest) {
			t.Errorf("RegisterUser(%q, %q) error = %v; want ErrInvalidRequest", c.username, c.password, err)
		}
	}
}

func TestRegisterUser_Error(t *testing.T) {
	wantErr := apperr.New(apperr.KindUsernameAlreadyRegistered)
	repo := &mockAuthRepo{
		CreateUserFunc: func(ctx context.Context, name, key string) error {
			return wantErr
		},
	}
	svc := NewAuthService(repo)

	err := svc.RegisterUser(context.Background(), "dave", "pw")
	if err != wantErr {
		t.Fatalf("RegisterUser error = %v; want %v", err, wantErr)
	}
}

func TestAuthorize(t *testing.T) {
	stored := map[string]string{"alice": "secret"}
	repo := &mockAuthRepo{
		GetUserFunc: func(ctx context.Context, name string) (models.User, error) {
			if name == "broken" {
				return models.User{}, apperr.Wrap(apperr.KindStore, errors.New("down"))
			}
			key, ok := stored[name]
			if !ok {
				return models.User{}, apperr.New(apperr.KindUnauthorized)
			}
			return models.User{Name: name, Key: key}, nil
		},
	}
	svc := NewAuthService(repo)

	tests := []struct {
		name     string
		username string
		password string
		wantUser string
		wantErr  bool
	}{
		{"match", "alice", "secret", "alice", false},
		{"wrong key", "alice", "wrong", "", true},
		{"empty key", "alice", "", "", true},
		{"key prefix", "alice", "secre", "", true},
		{"unknown user", "mallory", "secret", "", true},
		{"invalid username", "alice:key", "secret", "", true},
		{"empty username", "", "secret", "", true},
		{"store failure", "broken", "secret", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Authorize(context.Background(), tt.username, tt.password)
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrUnauthorized) {
					t.Fatalf("Authorize error = %v; want ErrUnauthorized", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authorize returned error: %v", err)
			}
			if got != tt.wantUser {
				t.Errorf("Authorize = %q; want %q", got, tt.wantUser)
			}
		})
	}
}

func TestAuthorize_StoreFailureRenderedAsUnauthorized(t *testing.T) {
	repo := &mockAuthRepo{
		GetUserFunc: func(ctx context.Context, name string) (models.User, error) {
			return models.User{}, apperr.Wrap(apperr.KindStore, errors.New("down"))
		},
	}
	svc := NewAuthService(repo)

	_, err := svc.Authorize(context.Background(), "alice", "secret")
	status, body := apperr.Render(err)
	if status != 401 || body.Code != 2001 {
		t.Errorf("Render = %d %+v; want 401 code 2001", status, body)
	}
}
