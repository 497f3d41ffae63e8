package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-manager-api/internal/adapters/memory"
	"event-manager-api/internal/domain/common/errorz"
	"event-manager-api/internal/domain/entity"
	"event-manager-api/internal/domain/service"
)

func newAuthService(users *memory.UserStorage) *service.AuthService {
	return service.NewAuthService(users, memory.NewTokenStorage(), testAuthConfig())
}

func TestLoginMasterAdminWithoutStoredRow(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStorage()
	auth := newAuthService(users)

	token, err := auth.Login(ctx, masterUsername, "master-secret")
	require.NoError(t, err)

	claims, err := auth.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, masterUsername, claims.Subject)
	assert.Equal(t, string(entity.Admin), claims.Role)

	all, err := users.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "master admin must not be persisted")
}

func TestLoginStoredUser(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStorage()
	auth := newAuthService(users)
	createUser(t, users, "olivia", "Passw0rd!", entity.Organizer)

	token, err := auth.Login(ctx, "olivia", "Passw0rd!")
	require.NoError(t, err)

	claims, err := auth.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "olivia", claims.Subject)
	assert.Equal(t, string(entity.Organizer), claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStorage()
	auth := newAuthService(users)
	createUser(t, users, "olivia", "Passw0rd!", entity.Organizer)

	_, err := auth.Login(ctx, "olivia", "wrong")
	assert.ErrorIs(t, err, errorz.ErrInvalidCredentials)

	_, err = auth.Login(ctx, "nobody", "Passw0rd!")
	assert.ErrorIs(t, err, errorz.ErrInvalidCredentials)

	_, err = auth.Login(ctx, masterUsername, "wrong")
	assert.ErrorIs(t, err, errorz.ErrInvalidCredentials)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStorage()
	auth := newAuthService(users)

	user := createUser(t, users, "adam", "Passw0rd!", entity.Attendee)
	user.IsActive = false
	_, err := users.Update(ctx, user)
	require.NoError(t, err)

	_, err = auth.Login(ctx, "adam", "Passw0rd!")
	assert.ErrorIs(t, err, errorz.ErrInvalidCredentials)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService(memory.NewUserStorage())

	_, err := auth.VerifyToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, errorz.ErrInvalidToken)

	token, err := auth.Login(ctx, masterUsername, "master-secret")
	require.NoError(t, err)

	_, err = auth.VerifyToken(ctx, token+"tampered")
	assert.ErrorIs(t, err, errorz.ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService(memory.NewUserStorage())

	token, err := auth.Login(ctx, masterUsername, "master-secret")
	require.NoError(t, err)

	_, err = auth.VerifyToken(ctx, token)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, token))

	_, err = auth.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, errorz.ErrInvalidToken)
}
