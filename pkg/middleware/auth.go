package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lspratas/atelier/pkg/auth"
	"github.com/lspratas/atelier/pkg/cache"
	"github.com/lspratas/atelier/pkg/response"
)

// claimsKey is the unexported context key for the authenticated claims.
type claimsKey struct{}

// revokedKeyPrefix namespaces the logout denylist in Redis.
const revokedKeyPrefix = "auth:revoked:"

// RevokedKey builds the denylist cache key for a token ID.
func RevokedKey(tokenID string) string { return revokedKeyPrefix + tokenID }

// ClaimsFromCtx returns the claims stored by Auth, or nil outside an
// authenticated request.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	if c, ok := ctx.Value(claimsKey{}).(*auth.Claims); ok {
		return c
	}
	return nil
}

// Auth gates admin routes: a valid, non-revoked Bearer token is required.
// While the session cannot be resolved the client sees only 401 — no
// detail about why.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		// Tokens revoked by logout stay denied until their natural expiry.
		if cache.Has(r.Context(), RevokedKey(claims.ID)) {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
