package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classlog/classlog/internal/auth"
	"github.com/classlog/classlog/internal/model"
	"github.com/classlog/classlog/internal/repository"
)

type fakeUserStore struct {
	users map[string]*model.User
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if user, ok := s.users[username]; ok {
		return user, nil
	}
	return nil, repository.NewRecordNotFound("user")
}

func newFakeStore(t *testing.T, users ...*model.User) *fakeUserStore {
	t.Helper()
	store := &fakeUserStore{users: map[string]*model.User{}}
	for _, u := range users {
		store.users[u.Username] = u
	}
	return store
}

func storedUser(t *testing.T, username, password string, active bool) *model.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &model.User{
		ID:           1,
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleStudent,
		IsActive:     active,
	}
}

func newResolver(store auth.UserStore) *auth.SessionResolver {
	tokens := auth.NewTokenService(testSigningKey, time.Hour, nil)
	return auth.NewSessionResolver(tokens, store, nil)
}

func TestSessionResolverLoginAndResolve(t *testing.T) {
	store := newFakeStore(t, storedUser(t, "zhang.wei", "secret123", true))
	resolver := newResolver(store)

	token, identity, err := resolver.Login(context.Background(), "zhang.wei", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "zhang.wei", identity.Username)
	assert.Equal(t, model.RoleStudent, identity.Role)

	resolved, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, identity, resolved)
}

func TestSessionResolverLoginFailures(t *testing.T) {
	store := newFakeStore(t,
		storedUser(t, "zhang.wei", "secret123", true),
		storedUser(t, "disabled", "secret123", false),
	)
	resolver := newResolver(store)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "Wrong password",
			username: "zhang.wei",
			password: "wrong",
			wantErr:  auth.ErrMismatchedHashAndPassword,
		},
		{
			name:     "Unknown user reads as bad credentials",
			username: "nobody",
			password: "secret123",
			wantErr:  auth.ErrMismatchedHashAndPassword,
		},
		{
			name:     "Disabled account with good credentials",
			username: "disabled",
			password: "secret123",
			wantErr:  auth.ErrAccountDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := resolver.Login(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSessionResolverResolveFailures(t *testing.T) {
	active := storedUser(t, "zhang.wei", "secret123", true)
	store := newFakeStore(t, active)
	resolver := newResolver(store)

	token, _, err := resolver.Login(context.Background(), "zhang.wei", "secret123")
	require.NoError(t, err)

	t.Run("Subject deleted after issuance", func(t *testing.T) {
		delete(store.users, "zhang.wei")
		_, err := resolver.Resolve(context.Background(), token)
		assert.ErrorIs(t, err, auth.ErrUnknownSubject)
		store.users["zhang.wei"] = active
	})

	t.Run("Account deactivated after issuance", func(t *testing.T) {
		active.IsActive = false
		_, err := resolver.Resolve(context.Background(), token)
		assert.ErrorIs(t, err, auth.ErrInactiveAccount)
		active.IsActive = true
	})

	t.Run("Garbage token", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "garbage")
		assert.ErrorIs(t, err, auth.ErrTokenMalformed)
	})
}
