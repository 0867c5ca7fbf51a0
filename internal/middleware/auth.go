package middleware

import (
	"context"
	"net/http"
	"strings"

	"marketAPI/internal/models"
)

const notLoggedIn = "You are not logged in"

type contextKey string

const userIDKey contextKey = "userID"

// TokenVerifier resolves a bearer token into a user id.
type TokenVerifier interface {
	VerifyToken(tokenString string) (int, error)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(verifier TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := authenticate(verifier, r)
			if !ok {
				writeError(w, notLoggedIn, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// OptionalAuth attaches the user when the token is valid and otherwise
// lets the request through anonymously.
func OptionalAuth(verifier TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := authenticate(verifier, r); ok {
				r = r.WithContext(WithUserID(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authenticate(verifier TokenVerifier, r *http.Request) (int, bool) {
	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return 0, false
	}

	userID, err := verifier.VerifyToken(token)
	if err != nil {
		return 0, false
	}

	return userID, true
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}

// ViewerFromContext reports who is making the request.
func ViewerFromContext(ctx context.Context) models.Viewer {
	if userID, ok := UserIDFromContext(ctx); ok {
		return models.AuthenticatedViewer{UserID: userID}
	}
	return models.AnonymousViewer{}
}
