package api

import (
	"net/http"

	"github.com/phrazzld/scry-notes/internal/api/shared"
	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/service"
)

// FlashcardHandler serves generated decks.
type FlashcardHandler struct {
	flashcards *service.FlashcardService
}

// NewFlashcardHandler creates a FlashcardHandler.
func NewFlashcardHandler(flashcards *service.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{flashcards: flashcards}
}

// Generate handles POST /notes/{id}/flashcards.
func (h *FlashcardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	deck, err := h.flashcards.Generate(r.Context(), pathParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate flashcards")
		return
	}
	if deck == nil {
		HandleAPIError(w, r, ErrNoteNotFound, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// List handles GET /decks.
func (h *FlashcardHandler) List(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.flashcards.Decks())
}

// Stats handles GET /decks/stats.
func (h *FlashcardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.flashcards.Stats())
}

// Get handles GET /decks/{id}.
func (h *FlashcardHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respondDeck(w, r)(h.flashcards.Deck(pathParam(r, "id")))
}

// Select handles POST /decks/{id}/select.
func (h *FlashcardHandler) Select(w http.ResponseWriter, r *http.Request) {
	h.respondDeck(w, r)(h.flashcards.Select(r.Context(), pathParam(r, "id")))
}

// Current handles GET /decks/current.
func (h *FlashcardHandler) Current(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.flashcards.Current()
	if !ok {
		HandleAPIError(w, r, ErrNoSelection, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// Reset handles DELETE /decks.
func (h *FlashcardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.flashcards.Reset(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *FlashcardHandler) respondDeck(w http.ResponseWriter, r *http.Request) func(*domain.FlashcardDeck, bool) {
	return func(deck *domain.FlashcardDeck, ok bool) {
		if !ok {
			HandleAPIError(w, r, ErrDeckNotFound, "")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, deck)
	}
}
