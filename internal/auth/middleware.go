package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const playerKey contextKey = "player"

// Middleware returns an HTTP middleware that validates JWT access tokens.
// Extracts the token from the Authorization header (Bearer scheme)
// and stores the player name in the request context.
func Middleware(jwtMgr *JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				http.Error(w, `{"error":"invalid authorization format"}`, http.StatusUnauthorized)
				return
			}

			claims, err := jwtMgr.ValidateKind(parts[1], KindAccess)
			if err != nil {
				http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), playerKey, claims.Player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PlayerFromContext extracts the authenticated player name from the request
// context.
func PlayerFromContext(ctx context.Context) string {
	name, _ := ctx.Value(playerKey).(string)
	return name
}
