package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"event-manager-api/internal/adapters/memory"
	"event-manager-api/internal/domain/entity"
	"event-manager-api/internal/domain/service"
	"event-manager-api/pkg/logger/types"
)

const masterUsername = "masteradmin"

func testAuthConfig() service.AuthConfig {
	return service.AuthConfig{
		MasterUsername: masterUsername,
		MasterPassword: "master-secret",
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
	}
}

func testLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func createUser(t *testing.T, users *memory.UserStorage, username, password string, role entity.Role) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user, err := users.Create(context.Background(), &entity.User{
		Username: username,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	})
	require.NoError(t, err)
	return user
}

func claimsFor(user *entity.User) service.Claims {
	return service.Claims{
		Subject:   user.Username,
		Role:      string(user.Role),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func masterClaims() service.Claims {
	return service.Claims{
		Subject:   masterUsername,
		Role:      string(entity.Admin),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func futureDate() time.Time {
	return time.Now().Add(48 * time.Hour).UTC()
}
