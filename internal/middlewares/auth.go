package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/acmeweb/acme-api/internal/logger"
	"github.com/acmeweb/acme-api/internal/token"
)

// Tokener defines the minimal token interface needed by the middleware.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*token.Claims, error)
}

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware validates the bearer token, rejects revoked tokens,
// and stores the authenticated user id in the request context.
func AuthMiddleware(tokener Tokener, revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			revoked, err := revocations.IsRevoked(ctx, claims.TokenID)
			if err != nil {
				logger.Log.Errorw("revocation check failed", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if revoked {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx = SetUserIDToContext(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type userIDKeyType struct{}

var userIDKey = userIDKeyType{}

// SetUserIDToContext stores the authenticated user id in the context.
func SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the authenticated user id. The
// second result is false when the request was not authenticated.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}
