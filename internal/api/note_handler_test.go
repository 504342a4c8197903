package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/export"
	"github.com/phrazzld/scry-notes/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noteIDs(notes []domain.Note) []string {
	ids := make([]string, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestNotes_RequireLogin(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	for _, path := range []string{"/api/notes", "/api/decks", "/api/dashboard", "/api/tags"} {
		w := api.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "Login required", errorMessage(t, w), path)
	}
}

func TestNotes_ListAndSearch(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	api.login()

	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "all", path: "/api/notes", want: []string{"1", "2"}},
		{name: "query matches content case-insensitively", path: "/api/notes?q=MITOCHONDRIA", want: []string{"1"}},
		{name: "single tag", path: "/api/notes?tag=history", want: []string{"2"}},
		{name: "every tag must match", path: "/api/notes?tag=biology&tag=history", want: []string{}},
		{name: "no match", path: "/api/notes?q=quantum", want: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := api.do(http.MethodGet, tc.path, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.want, noteIDs(decode[[]domain.Note](t, w)))
		})
	}
}

func TestNotes_CreateGetUpdateDelete(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	api.login()

	w := api.do(http.MethodPost, "/api/notes", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[domain.Note](t, w)
	assert.Equal(t, domain.DefaultNoteTitle, created.Title)
	assert.Equal(t, service.DemoUserID, created.OwnerID)

	list := decode[[]domain.Note](t, api.do(http.MethodGet, "/api/notes", nil))
	assert.Equal(t, []string{created.ID, "1", "2"}, noteIDs(list), "new notes go first")

	title := "Photosynthesis"
	w = api.do(http.MethodPatch, "/api/notes/"+created.ID, UpdateNoteRequest{Title: &title})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Photosynthesis", decode[domain.Note](t, w).Title)

	got := decode[domain.Note](t, api.do(http.MethodGet, "/api/notes/"+created.ID, nil))
	assert.Equal(t, "Photosynthesis", got.Title)
	assert.Empty(t, got.Content, "fields left out of the patch are untouched")

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/notes/"+created.ID, nil).Code)

	w = api.do(http.MethodGet, "/api/notes/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Note not found", errorMessage(t, w))
}

func TestNotes_Misses(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	api.login()

	title := "x"
	requests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/notes/missing", nil},
		{http.MethodPatch, "/api/notes/missing", UpdateNoteRequest{Title: &title}},
		{http.MethodDelete, "/api/notes/missing", nil},
		{http.MethodPost, "/api/notes/missing/share", ShareNoteRequest{Email: "a@b.co"}},
		{http.MethodPost, "/api/notes/missing/visibility", nil},
		{http.MethodPost, "/api/notes/missing/tags", TagRequest{Tag: "x"}},
		{http.MethodDelete, "/api/notes/missing/tags/x", nil},
		{http.MethodPost, "/api/notes/missing/select", nil},
		{http.MethodGet, "/api/notes/missing/markdown", nil},
	}

	for _, req := range requests {
		w := api.do(req.method, req.path, req.body)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", req.method, req.path)
	}

	assert.Len(t, api.app.Notes.List(), 2, "misses change nothing")
}

func TestNotes_ShareAndVisibility(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	api.login()

	w := api.do(http.MethodPost, "/api/notes/1/share", ShareNoteRequest{Email: "friend@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"friend@example.com"}, decode[domain.Note](t, w).SharedWith)

	w = api.do(http.MethodPost, "/api/notes/1/share", ShareNoteRequest{Email: "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, "/api/notes/2/visibility", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[domain.Note](t, w).IsPublic)

	byMe := decode[[]domain.Note](t, api.do(http.MethodGet, "/api/notes/shared-by-me", nil))
	assert.Equal(t, []string{"1"}, noteIDs(byMe))

	withMe := decode[[]domain.Note](t, api.do(http.MethodGet, "/api/notes/shared-with-me", nil))
	assert.Empty(t, withMe, "the demo user owns every seeded note")
}

func TestNotes_Tags(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	api.login()

	tags := decode[[]string](t, api.do(http.MethodGet, "/api/tags", nil))
	assert.Equal(t, []string{"biology", "cells", "history", "science", "world war II"}, tags)

	w := api.do(http.MethodPost, "/api/notes/1/tags", TagRequest{Tag: "  genetics "})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[domain.Note](t, w).Tags, "genetics")

	w = api.do(http.MethodPost, "/api/notes/1/tags", TagRequest{Tag: "genetics"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Tag already exists", errorMessage(t, w))

	w = api.do(http.MethodPost, "/api/notes/1/tags", TagRequest{Tag: "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please enter a tag", errorMessage(t, w))

	w = api.do(http.MethodDelete, "/api/notes/2/tags/world%20war%20II", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"history"}, decode[domain.Note](t, w).Tags)
}

func TestNotes_Selection(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	api.login()

	w := api.do(http.MethodGet, "/api/notes/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Nothing is selected", errorMessage(t, w))

	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/notes/2/select", nil).Code)
	current := decode[domain.Note](t, api.do(http.MethodGet, "/api/notes/current", nil))
	assert.Equal(t, "2", current.ID)

	content := "Edited"
	api.do(http.MethodPatch, "/api/notes/2", UpdateNoteRequest{Content: &content})
	current = decode[domain.Note](t, api.do(http.MethodGet, "/api/notes/current", nil))
	assert.Equal(t, "Edited", current.Content, "the selection follows edits")

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/notes/current", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/notes/current", nil).Code)
}

func TestNotes_Dashboard(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	api.login()

	stats := decode[service.NoteStats](t, api.do(http.MethodGet, "/api/dashboard", nil))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Public)
	assert.Zero(t, stats.Shared)
	assert.Equal(t, []string{"1", "2"}, noteIDs(stats.Recent))
}

func TestNotes_MarkdownRoundTrip(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	api.login()

	w := api.do(http.MethodGet, "/api/notes/1/markdown", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".md")

	exported, err := export.UnmarshalNote(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "1", exported.ID)

	edited := strings.Replace(w.Body.String(), "Cells are", "Cells really are", 1)
	w = api.do(http.MethodPost, "/api/notes/import", edited)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[ImportResponse](t, w).Imported)

	got, ok := api.app.Notes.Get("1")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(got.Content, "Cells really are"))
	assert.Len(t, api.app.Notes.List(), 2, "a known ID replaces in place")

	w = api.do(http.MethodPost, "/api/notes/import", "just some text")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
