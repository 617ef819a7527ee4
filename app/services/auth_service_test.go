package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/app/repositories"
	"github.com/lspratas/atelier/app/services"
	"github.com/lspratas/atelier/pkg/auth"
)

type userFake struct {
	users map[string]models.User
}

func (f *userFake) FindByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return u, nil
}

func seedUser(t *testing.T, email, password string) *userFake {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	return &userFake{users: map[string]models.User{
		email: {ID: primitive.NewObjectID(), Name: "Lali", Email: email, Password: hash},
	}}
}

func TestLoginSuccess(t *testing.T) {
	users := seedUser(t, "lali@test.dev", "segredo-123")
	svc := services.NewAuthService(users)

	token, user, err := svc.Login(context.Background(), "  Lali@Test.dev ", "segredo-123")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "lali@test.dev", user.Email)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	users := seedUser(t, "lali@test.dev", "segredo-123")
	svc := services.NewAuthService(users)

	_, _, wrongPass := svc.Login(context.Background(), "lali@test.dev", "errada")
	_, _, unknown := svc.Login(context.Background(), "ninguem@test.dev", "segredo-123")

	assert.ErrorIs(t, wrongPass, services.ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, services.ErrInvalidCredentials)
	assert.Equal(t, wrongPass, unknown)
}

func TestLogoutWithExpiredTokenIsNoop(t *testing.T) {
	svc := services.NewAuthService(&userFake{})

	claims := &auth.Claims{}
	claims.ID = "token-id"
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	assert.NoError(t, svc.Logout(context.Background(), claims))
	assert.NoError(t, svc.Logout(context.Background(), nil))
}
