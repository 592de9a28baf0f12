package auth

import (
	"context"
	"testing"

	domain "shopfolders/backend/internal/domain/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (m *memUsers) Create(_ context.Context, user *domain.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return domain.ErrEmailExists
	}
	cp := *user
	m.byID[user.ID] = &cp
	m.byEmail[user.Email] = &cp
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// stubTokens avoids signing real JWTs in service tests.
type stubTokens struct{}

func (stubTokens) Generate(userID string) (string, error) { return "tok-" + userID, nil }

func (stubTokens) Validate(token string) (string, error) {
	if len(token) > 4 && token[:4] == "tok-" {
		return token[4:], nil
	}
	return "", domain.ErrTokenInvalid
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(newMemUsers(), stubTokens{})
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ops@Example.com ", "secret123", " Ops ")
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", user.Email)
	assert.Equal(t, "Ops", user.Name)
	assert.Empty(t, user.PasswordHash, "hash must never leave the service")

	token, logged, err := svc.Login(ctx, domain.Credentials{Email: "ops@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "tok-"+user.ID, token)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newMemUsers(), stubTokens{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "ops@example.com", "secret123", "Ops")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ops@example.com", "other-secret", "Ops Two")
	require.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(newMemUsers(), stubTokens{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "ops@example.com", "secret123", "Ops")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, domain.Credentials{Email: "ops@example.com", Password: "wrong"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, domain.Credentials{Email: "nobody@example.com", Password: "secret123"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyToken(t *testing.T) {
	svc := NewService(newMemUsers(), stubTokens{})
	ctx := context.Background()

	user, err := svc.Register(ctx, "ops@example.com", "secret123", "Ops")
	require.NoError(t, err)

	verified, err := svc.VerifyToken(ctx, "tok-"+user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)

	_, err = svc.VerifyToken(ctx, "garbage")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)

	// valid token shape but no matching user
	_, err = svc.VerifyToken(ctx, "tok-unknown")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}
