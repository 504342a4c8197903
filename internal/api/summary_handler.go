package api

import (
	"net/http"

	"github.com/phrazzld/scry-notes/internal/api/shared"
	"github.com/phrazzld/scry-notes/internal/service"
)

// SummaryHandler serves the summarizer.
type SummaryHandler struct {
	summaries *service.SummaryService
}

// NewSummaryHandler creates a SummaryHandler.
func NewSummaryHandler(summaries *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaries: summaries}
}

// Summarize handles POST /summaries. It works without a session.
func (h *SummaryHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	summary, err := h.summaries.Summarize(r.Context(), req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to summarize text")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SummaryResponse{Summary: summary})
}

// Save handles POST /summaries/notes, storing a summary as a new note.
func (h *SummaryHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveSummaryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	note, err := h.summaries.SaveAsNote(r.Context(), req.Summary)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save summary")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, note)
}
