package middleware

import (
	"net/http"

	"github.com/phrazzld/scry-notes/internal/api/shared"
)

// Session reports whether a user is logged in.
type Session interface {
	IsAuthenticated() bool
}

// AuthMiddleware rejects requests made while nobody is logged in.
type AuthMiddleware struct {
	session Session
}

// NewAuthMiddleware creates an AuthMiddleware backed by session.
func NewAuthMiddleware(session Session) *AuthMiddleware {
	return &AuthMiddleware{session: session}
}

// Authenticate responds 401 unless the session is authenticated.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.session.IsAuthenticated() {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
