package api

import (
	"net/http"

	"github.com/phrazzld/scry-notes/internal/api/shared"
	"github.com/phrazzld/scry-notes/internal/service"
)

// AuthHandler serves the session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /auth/register. The new account is logged in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create account")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, SessionResponse{Authenticated: true, User: user})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to log in")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{Authenticated: true, User: user})
}

// Logout handles POST /auth/logout. It succeeds even without a session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /auth/session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user, ok := h.auth.CurrentUser()
	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{Authenticated: ok, User: user})
}
