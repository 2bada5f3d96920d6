package api

import (
	"context"
	"net/http"

	"quickchat/auth"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserIDFrom returns the authenticated user id placed by requireAuth.
func UserIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// requireAuth validates the "token" header and injects the caller's user id
// into the request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := auth.ValidateToken(r.Header.Get("token"))
		if err != nil {
			s.respond(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": "invalid or missing token",
			})
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, claims.UserID)))
	})
}
