package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/pkg/auth"
	"github.com/lspratas/atelier/pkg/cache"
	"github.com/lspratas/atelier/pkg/logger"
	"github.com/lspratas/atelier/pkg/middleware"
)

// ErrInvalidCredentials is the single failure the login surface exposes.
// Unknown email and wrong password are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("services: invalid credentials")

// AuthService runs the admin gate: credential login, token revocation on
// logout, session introspection.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Login verifies the credentials and mints a session token. Every failure
// path returns ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", models.User{}, ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, password) {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		logger.WithCtx(ctx).Error("token mint failed", "user", user.Email, "error", err)
		return "", models.User{}, ErrInvalidCredentials
	}

	logger.WithCtx(ctx).Info("admin login", "user", user.Email)
	return token, user, nil
}

// Logout revokes the session token by denylisting its ID until the token
// would have expired on its own.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return cache.Set(ctx, middleware.RevokedKey(claims.ID), true, ttl)
}
