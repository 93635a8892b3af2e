package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-notes-api/internal/repository"
	"github.com/yukikurage/task-notes-api/internal/testutil"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "  Alice@Example.COM ", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	loggedIn, err := svc.Login(ctx, LoginInput{Email: "ALICE@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, err = svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "wrongpassword"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	found, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = svc.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "not-an-email", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(ctx, RegisterInput{Email: "bob@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(ctx, RegisterInput{Email: "bob@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "BOB@example.com", Password: "anothersecret"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}
