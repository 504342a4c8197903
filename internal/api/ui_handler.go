package api

import (
	"net/http"

	"github.com/phrazzld/scry-notes/internal/api/shared"
	"github.com/phrazzld/scry-notes/internal/service"
)

// UIHandler serves display preferences.
type UIHandler struct {
	ui *service.UIService
}

// NewUIHandler creates a UIHandler.
func NewUIHandler(ui *service.UIService) *UIHandler {
	return &UIHandler{ui: ui}
}

// Preferences handles GET /ui.
func (h *UIHandler) Preferences(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.ui.Preferences())
}

// ToggleDarkMode handles POST /ui/dark-mode.
func (h *UIHandler) ToggleDarkMode(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.ui.ToggleDarkMode(r.Context()))
}

// ToggleSidebar handles POST /ui/sidebar.
func (h *UIHandler) ToggleSidebar(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.ui.ToggleSidebar(r.Context()))
}
