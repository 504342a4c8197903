package generation

import (
	"context"

	"github.com/phrazzld/scry-notes/internal/domain"
)

// Generator defines the interface for generating flashcards from a note.
// It is the boundary between the flashcard state owner and whatever
// produces the cards.
type Generator interface {
	// GenerateCards creates flashcards from the note's content.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - note: The note whose content is turned into cards
	//
	// Returns:
	//   - The generated cards in content order (possibly empty)
	//   - An error if generation fails (see errors.go for specific types)
	GenerateCards(ctx context.Context, note *domain.Note) ([]domain.Flashcard, error)
}
