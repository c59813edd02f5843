package middleware

import (
	"context"
	"net/http"
	"strings"

	"inotebook-server/pkg/jwt"
	"inotebook-server/pkg/response"
)

type contextKey string

const UserIDKey contextKey = "userID"

// LegacyTokenHeader is the header older iNotebook clients send the raw token in.
const LegacyTokenHeader = "auth-token"

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := extractToken(r)
			if !ok {
				response.Unauthorized(w, "Please authenticate using a valid token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				response.Unauthorized(w, "Please authenticate using a valid token")
				return
			}

			setUserID(r, claims.UserID)
			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		return parts[1], true
	}

	if token := strings.TrimSpace(r.Header.Get(LegacyTokenHeader)); token != "" {
		return token, true
	}

	return "", false
}

func GetUserID(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
