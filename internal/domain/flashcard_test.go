package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashcardID(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "note-7-card-0", FlashcardID("note-7", 0))
	assert.Equal(t, "note-7-card-12", FlashcardID("note-7", 12))
}

func TestNewFlashcardDeck(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	note := &Note{ID: "n1", OwnerID: "u1", Title: "Biology"}

	deck, err := NewFlashcardDeck(note, nil, now)
	require.NoError(t, err)

	assert.NotEmpty(t, deck.ID)
	assert.Equal(t, "Biology Flashcards", deck.Name)
	assert.Equal(t, "n1", deck.NoteID)
	assert.NotNil(t, deck.Flashcards, "an empty deck still has a card slice")
	assert.Empty(t, deck.Flashcards)
	assert.Equal(t, now, deck.CreatedAt)

	_, err = NewFlashcardDeck(nil, nil, now)
	assert.ErrorIs(t, err, ErrDeckNoteIDEmpty)
}

func TestFlashcardDeckClone(t *testing.T) {
	t.Parallel()
	deck := &FlashcardDeck{ID: "d1", Flashcards: []Flashcard{{ID: "c1", Front: "f"}}}

	c := deck.Clone()
	c.Flashcards[0].Front = "changed"

	assert.Equal(t, "f", deck.Flashcards[0].Front)
}
