package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/scry-notes/internal/api/shared"
	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/platform/logger"
)

// decodeAndValidate reads the JSON body into v and validates it, writing a
// 400 response and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		if MapErrorToStatusCode(err) == http.StatusBadRequest {
			HandleAPIError(w, r, err, "")
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}

	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}

	return true
}

// pathParam returns the trimmed URL parameter name. Chi never routes an
// empty segment to a parameter, so a blank value means a routing bug.
func pathParam(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

// unescapedParam is pathParam with percent-encoding removed, for free-text
// segments such as tags.
func unescapedParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		raw = v
	}
	return strings.TrimSpace(raw)
}

// currentUser returns the session user or writes a 401.
func currentUser(w http.ResponseWriter, r *http.Request, session interface {
	CurrentUser() (*domain.User, bool)
}) (*domain.User, bool) {
	user, ok := session.CurrentUser()
	if !ok {
		logger.FromContext(r.Context()).Warn("authenticated route reached without a session user")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Login required")
		return nil, false
	}
	return user, true
}
