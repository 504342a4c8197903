package study

import (
	"testing"
	"time"

	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deckOf(n int) *domain.FlashcardDeck {
	note := &domain.Note{ID: "n1", Title: "Deck"}
	cards := make([]domain.Flashcard, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, domain.Flashcard{ID: domain.FlashcardID(note.ID, i), NoteID: note.ID})
	}
	deck, _ := domain.NewFlashcardDeck(note, cards, time.Unix(0, 0).UTC())
	return deck
}

func TestNewSession(t *testing.T) {
	t.Parallel()

	_, err := NewSession(nil)
	assert.ErrorIs(t, err, ErrEmptyDeck)
	_, err = NewSession(deckOf(0))
	assert.ErrorIs(t, err, ErrEmptyDeck)

	s, err := NewSession(deckOf(3))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 3, s.Len())
	assert.False(t, s.ShowingAnswer())
	assert.Equal(t, 0, s.Progress())
	assert.False(t, s.Done())
}

func TestSession_FlipAndNavigate(t *testing.T) {
	t.Parallel()

	s, err := NewSession(deckOf(3))
	require.NoError(t, err)

	s.Flip()
	assert.True(t, s.ShowingAnswer())
	s.Flip()
	assert.False(t, s.ShowingAnswer())

	s.Previous()
	assert.Equal(t, 0, s.Index(), "previous on the first card does nothing")

	s.Flip()
	s.Next()
	assert.Equal(t, 1, s.Index())
	assert.False(t, s.ShowingAnswer(), "moving hides the answer")
	assert.Equal(t, 1, s.Completed())

	s.Previous()
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 1, s.Completed(), "going back keeps progress")
}

func TestSession_FinishingStaysOnLastCard(t *testing.T) {
	t.Parallel()

	s, err := NewSession(deckOf(3))
	require.NoError(t, err)

	s.Next()
	s.Next()
	s.Previous()
	s.Next() // revisiting a completed card does not count twice
	assert.Equal(t, 2, s.Completed())
	assert.Equal(t, 2, s.Index())
	assert.False(t, s.Done())

	s.Next()
	assert.True(t, s.Done())
	assert.Equal(t, 2, s.Index())
	assert.Equal(t, 100, s.Progress())

	s.Reset()
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 0, s.Completed())
	assert.False(t, s.Done())
}

func TestSession_WrapSkipsCompletedCards(t *testing.T) {
	t.Parallel()

	s, err := NewSession(deckOf(3))
	require.NoError(t, err)

	s.Next() // 0 done -> 1
	s.Next() // 1 done -> 2
	// Only card 1 counts as done when the last card is finished.
	s.completed = map[string]bool{s.deck.Flashcards[1].ID: true}
	s.Next() // 2 done, first incomplete is 0
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 67, s.Progress())
}

func TestSession_Progress(t *testing.T) {
	t.Parallel()

	s, err := NewSession(deckOf(8))
	require.NoError(t, err)

	s.Next()
	assert.Equal(t, 13, s.Progress(), "12.5 rounds up")
	s.Next()
	assert.Equal(t, 25, s.Progress())
}

func TestSession_DeckIsCopied(t *testing.T) {
	t.Parallel()

	deck := deckOf(2)
	s, err := NewSession(deck)
	require.NoError(t, err)

	deck.Flashcards[0].Front = "changed"
	assert.Empty(t, s.Card().Front)
	got := s.Deck()
	got.Flashcards[0].Front = "changed"
	assert.Empty(t, s.Card().Front)
}
