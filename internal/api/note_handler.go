package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/phrazzld/scry-notes/internal/api/shared"
	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/export"
	"github.com/phrazzld/scry-notes/internal/service"
)

// NoteHandler serves the note collection.
type NoteHandler struct {
	notes *service.NoteService
	auth  *service.AuthService
}

// NewNoteHandler creates a NoteHandler. auth supplies the session user for
// the sharing views.
func NewNoteHandler(notes *service.NoteService, auth *service.AuthService) *NoteHandler {
	return &NoteHandler{notes: notes, auth: auth}
}

// List handles GET /notes. The q and tag query parameters filter the
// collection; tag may repeat and every listed tag must be present.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := service.NoteFilter{
		Query: query.Get("q"),
		Tags:  query["tag"],
	}

	notes := h.notes.List()
	if filter.Query != "" || len(filter.Tags) > 0 {
		notes = h.notes.Search(filter)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, notes)
}

// Create handles POST /notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	note, err := h.notes.Create(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create note")
		return
	}
	if note == nil {
		HandleAPIError(w, r, service.ErrNotAuthenticated, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, note)
}

// Get handles GET /notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respondNote(w, r)(h.notes.Get(pathParam(r, "id")))
}

// Update handles PATCH /notes/{id}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateNoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.respondNote(w, r)(h.notes.Update(r.Context(), pathParam(r, "id"), req.toUpdate()))
}

// Delete handles DELETE /notes/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.notes.Delete(r.Context(), pathParam(r, "id")) {
		HandleAPIError(w, r, ErrNoteNotFound, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Share handles POST /notes/{id}/share.
func (h *NoteHandler) Share(w http.ResponseWriter, r *http.Request) {
	var req ShareNoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.respondNote(w, r)(h.notes.Share(r.Context(), pathParam(r, "id"), req.Email))
}

// ToggleVisibility handles POST /notes/{id}/visibility.
func (h *NoteHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	h.respondNote(w, r)(h.notes.TogglePublic(r.Context(), pathParam(r, "id")))
}

// AddTag handles POST /notes/{id}/tags. A blank tag is a 400 and a tag the
// note already carries is a 409; both leave the note unchanged.
func (h *NoteHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	note, added := h.notes.AddTag(r.Context(), pathParam(r, "id"), req.Tag)
	switch {
	case added:
		shared.RespondWithJSON(w, r, http.StatusOK, note)
	case strings.TrimSpace(req.Tag) == "":
		shared.RespondWithError(w, r, http.StatusBadRequest, "Please enter a tag")
	case note != nil:
		shared.RespondWithError(w, r, http.StatusConflict, "Tag already exists")
	default:
		HandleAPIError(w, r, ErrNoteNotFound, "")
	}
}

// RemoveTag handles DELETE /notes/{id}/tags/{tag}.
func (h *NoteHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	h.respondNote(w, r)(h.notes.RemoveTag(r.Context(), pathParam(r, "id"), unescapedParam(r, "tag")))
}

// Select handles POST /notes/{id}/select.
func (h *NoteHandler) Select(w http.ResponseWriter, r *http.Request) {
	h.respondNote(w, r)(h.notes.Select(r.Context(), pathParam(r, "id")))
}

// Current handles GET /notes/current.
func (h *NoteHandler) Current(w http.ResponseWriter, r *http.Request) {
	note, ok := h.notes.Current()
	if !ok {
		HandleAPIError(w, r, ErrNoSelection, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, note)
}

// ClearCurrent handles DELETE /notes/current.
func (h *NoteHandler) ClearCurrent(w http.ResponseWriter, r *http.Request) {
	h.notes.SetCurrent(r.Context(), nil)
	w.WriteHeader(http.StatusNoContent)
}

// Tags handles GET /tags.
func (h *NoteHandler) Tags(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.notes.Tags())
}

// SharedWithMe handles GET /notes/shared-with-me.
func (h *NoteHandler) SharedWithMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.auth)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.notes.SharedWith(*user))
}

// SharedByMe handles GET /notes/shared-by-me.
func (h *NoteHandler) SharedByMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.auth)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.notes.SharedBy(*user))
}

// Dashboard handles GET /dashboard.
func (h *NoteHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.notes.Dashboard())
}

// Markdown handles GET /notes/{id}/markdown, returning the note as a
// markdown document with YAML frontmatter.
func (h *NoteHandler) Markdown(w http.ResponseWriter, r *http.Request) {
	note, ok := h.notes.Get(pathParam(r, "id"))
	if !ok {
		HandleAPIError(w, r, ErrNoteNotFound, "")
		return
	}

	data, err := export.MarshalNote(*note)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export note")
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(*note)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Import handles POST /notes/import with a markdown document body. A note
// with a known ID replaces the existing one.
func (h *NoteHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, shared.MaxBodyBytes))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	note, err := export.UnmarshalNote(data)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid markdown note", err)
		return
	}

	n := h.notes.Import(r.Context(), []domain.Note{*note})
	shared.RespondWithJSON(w, r, http.StatusOK, ImportResponse{Imported: n})
}

// respondNote writes the note, or a 404 on a miss.
func (h *NoteHandler) respondNote(w http.ResponseWriter, r *http.Request) func(*domain.Note, bool) {
	return func(note *domain.Note, ok bool) {
		if !ok {
			HandleAPIError(w, r, ErrNoteNotFound, "")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, note)
	}
}
