// Package study walks a learner through one flashcard deck: flip a card,
// move on, and track which cards have been seen.
package study

import (
	"errors"

	"github.com/phrazzld/scry-notes/internal/domain"
)

// ErrEmptyDeck is returned when a deck has no cards to study.
var ErrEmptyDeck = errors.New("deck has no flashcards")

// Session is the progress through one deck. It is not safe for concurrent use.
type Session struct {
	deck       *domain.FlashcardDeck
	index      int
	showAnswer bool
	completed  map[string]bool
}

// NewSession starts at the first card with its answer hidden.
func NewSession(deck *domain.FlashcardDeck) (*Session, error) {
	if deck == nil || len(deck.Flashcards) == 0 {
		return nil, ErrEmptyDeck
	}
	return &Session{
		deck:      deck.Clone(),
		completed: make(map[string]bool, len(deck.Flashcards)),
	}, nil
}

// Deck returns the deck being studied.
func (s *Session) Deck() *domain.FlashcardDeck {
	return s.deck.Clone()
}

// Card returns the card on display.
func (s *Session) Card() domain.Flashcard {
	return s.deck.Flashcards[s.index]
}

// Index is the zero-based position of the current card.
func (s *Session) Index() int {
	return s.index
}

// Len is the number of cards in the deck.
func (s *Session) Len() int {
	return len(s.deck.Flashcards)
}

// ShowingAnswer reports whether the back of the card is visible.
func (s *Session) ShowingAnswer() bool {
	return s.showAnswer
}

// Flip shows or hides the answer.
func (s *Session) Flip() {
	s.showAnswer = !s.showAnswer
}

// Next marks the current card complete and advances. From the last card it
// wraps to the first card still incomplete; once every card is complete it
// stays where it is.
func (s *Session) Next() {
	current := s.Card()
	s.completed[current.ID] = true

	if s.index < len(s.deck.Flashcards)-1 {
		s.move(s.index + 1)
		return
	}

	for i, card := range s.deck.Flashcards {
		if !s.completed[card.ID] {
			s.move(i)
			return
		}
	}
}

// Previous steps back one card. On the first card it does nothing.
func (s *Session) Previous() {
	if s.index > 0 {
		s.move(s.index - 1)
	}
}

// Reset returns to the first card and forgets all progress.
func (s *Session) Reset() {
	s.move(0)
	s.completed = make(map[string]bool, len(s.deck.Flashcards))
}

// Completed is how many distinct cards have been marked complete.
func (s *Session) Completed() int {
	return len(s.completed)
}

// Progress is the completed share of the deck as a percentage, rounded
// half up.
func (s *Session) Progress() int {
	n := len(s.deck.Flashcards)
	return (200*len(s.completed) + n) / (2 * n)
}

// Done reports whether every card has been completed.
func (s *Session) Done() bool {
	return len(s.completed) == len(s.deck.Flashcards)
}

func (s *Session) move(i int) {
	s.index = i
	s.showAnswer = false
}
