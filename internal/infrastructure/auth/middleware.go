package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/honeynil/employer-dashboard/internal/infrastructure/redis"
	"github.com/honeynil/employer-dashboard/internal/models"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
)

type contextKey struct{}

// ErrorWriter renders an error response; the handler package supplies it so
// auth failures carry the same body as every other error.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

func ContextWithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, session)
}

func SessionFromContext(ctx context.Context) (models.Session, bool) {
	session, ok := ctx.Value(contextKey{}).(models.Session)
	return session, ok
}

// AuthMiddleware accepts a Bearer token only while it is the one registered
// for the user in Redis, so logout and re-login revoke older tokens.
func AuthMiddleware(tokens *TokenManager, redisClient redis.RedisClient, onError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				onError(w, r, pkgerrors.ErrUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				onError(w, r, pkgerrors.ErrUnauthorized)
				return
			}

			tokenStr := parts[1]
			session, err := tokens.Parse(tokenStr)
			if err != nil {
				slog.Warn("invalid token", "error", err)
				onError(w, r, pkgerrors.ErrInvalidToken)
				return
			}

			storedToken, err := redisClient.Get(r.Context(), SessionKey(session.UserID))
			if err != nil && !errors.Is(err, redis.ErrKeyNotFound) {
				slog.Error("failed to load session", "user_id", session.UserID, "error", err)
				onError(w, r, fmt.Errorf("failed to load session: %w", err))
				return
			}
			if err != nil || storedToken != tokenStr {
				slog.Warn("invalid or revoked token", "user_id", session.UserID, "error", err)
				onError(w, r, pkgerrors.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), *session)))
		})
	}
}

// RequireActive lets through only sessions of onboarded users.
func RequireActive(onError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok {
				onError(w, r, pkgerrors.ErrUnauthorized)
				return
			}
			if !session.Active() {
				onError(w, r, pkgerrors.ErrOnboardingRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
