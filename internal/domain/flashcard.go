package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Flashcard validation errors
var (
	ErrDeckNoteIDEmpty = errors.New("deck note ID cannot be empty")
)

// Flashcard is a single front/back pair derived from one line of a note.
// Cards are immutable once generated.
type Flashcard struct {
	ID        string    `json:"id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	NoteID    string    `json:"note_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FlashcardID builds the deterministic card identifier for the card at
// position index of the note's surviving lines.
func FlashcardID(noteID string, index int) string {
	return fmt.Sprintf("%s-card-%d", noteID, index)
}

// FlashcardDeck is a named ordered collection of cards generated from a
// note. The deck only references the note; later edits or deletion of the
// note leave the deck untouched.
type FlashcardDeck struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	NoteID     string      `json:"note_id"`
	Flashcards []Flashcard `json:"flashcards"`
	CreatedAt  time.Time   `json:"created_at"`
}

// DeckName derives a deck name from its source note title.
func DeckName(noteTitle string) string {
	return noteTitle + " Flashcards"
}

// NewFlashcardDeck wraps generated cards in a new deck for the given note.
func NewFlashcardDeck(note *Note, cards []Flashcard, now time.Time) (*FlashcardDeck, error) {
	if note == nil || note.ID == "" {
		return nil, ErrDeckNoteIDEmpty
	}

	if cards == nil {
		cards = []Flashcard{}
	}

	return &FlashcardDeck{
		ID:         uuid.NewString(),
		Name:       DeckName(note.Title),
		NoteID:     note.ID,
		Flashcards: cards,
		CreatedAt:  now,
	}, nil
}

// Clone returns a deep copy of the deck, or nil for a nil receiver.
func (d *FlashcardDeck) Clone() *FlashcardDeck {
	if d == nil {
		return nil
	}
	c := *d
	c.Flashcards = append(make([]Flashcard, 0, len(d.Flashcards)), d.Flashcards...)
	return &c
}
