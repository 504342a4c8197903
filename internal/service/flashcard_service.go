package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/events"
	"github.com/phrazzld/scry-notes/internal/generation"
	"github.com/phrazzld/scry-notes/internal/notify"
	"github.com/phrazzld/scry-notes/internal/redact"
	"github.com/phrazzld/scry-notes/internal/store"
)

// NoteLookup finds a note by id.
type NoteLookup interface {
	Get(id string) (*domain.Note, bool)
}

type flashcardsSnapshot struct {
	Decks       []domain.FlashcardDeck `json:"decks"`
	CurrentDeck *domain.FlashcardDeck  `json:"current_deck"`
}

// DeckStats counts decks and the cards in them.
type DeckStats struct {
	Decks      int `json:"decks"`
	Flashcards int `json:"flashcards"`
}

// FlashcardService owns generated decks and the current deck selection.
type FlashcardService struct {
	mu      sync.Mutex
	decks   []domain.FlashcardDeck
	current *domain.FlashcardDeck

	notes     NoteLookup
	generator generation.Generator
	state     *partition[flashcardsSnapshot]
	notifier  notify.Sink
	logger    *slog.Logger
	opts      options
}

// NewFlashcardService creates a FlashcardService with no decks.
func NewFlashcardService(
	deps Deps,
	notes NoteLookup,
	generator generation.Generator,
	opts ...Option,
) (*FlashcardService, error) {
	if err := deps.validate("flashcards"); err != nil {
		return nil, err
	}
	if notes == nil {
		return nil, missingDependency("flashcards", "notes")
	}
	if generator == nil {
		return nil, missingDependency("flashcards", "generator")
	}

	logger := deps.logger("flashcard_service")
	return &FlashcardService{
		decks:     []domain.FlashcardDeck{},
		notes:     notes,
		generator: generator,
		state:     newPartition[flashcardsSnapshot](store.PartitionFlashcards, deps, logger),
		notifier:  deps.Notifier,
		logger:    logger,
		opts:      newOptions(opts),
	}, nil
}

// Load restores decks and the current selection from the store.
func (s *FlashcardService) Load(ctx context.Context) error {
	snap, found, err := s.state.load(ctx)
	if !found {
		return err
	}

	s.mu.Lock()
	s.decks = snap.Decks
	if s.decks == nil {
		s.decks = []domain.FlashcardDeck{}
	}
	s.current = snap.CurrentDeck
	s.mu.Unlock()
	return nil
}

// Reload is Load followed by a change event.
func (s *FlashcardService) Reload(ctx context.Context) error {
	err := s.Load(ctx)
	s.state.emit(ctx, events.ActionReloaded)
	return err
}

// Generate builds a deck from the note with noteID, puts it at the front of
// the collection and selects it. The deck is in the collection by the time
// Generate returns.
//
// An unknown noteID returns (nil, nil) without a deck or a notification.
func (s *FlashcardService) Generate(ctx context.Context, noteID string) (*domain.FlashcardDeck, error) {
	note, ok := s.notes.Get(noteID)
	if !ok {
		s.logger.Debug("generate skipped, note not found", "note_id", noteID)
		return nil, nil
	}

	cards, err := s.generator.GenerateCards(ctx, note)
	if err != nil {
		s.logger.Error("flashcard generation failed",
			"note_id", noteID,
			redact.ErrorAttr(err))
		s.notifier.Notify(ctx, notify.Error("Could not generate flashcards"))
		return nil, NewServiceError("flashcards", "generate", "failed to generate cards", err)
	}

	deck, err := domain.NewFlashcardDeck(note, cards, s.opts.now())
	if err != nil {
		s.notifier.Notify(ctx, notify.Error("Could not generate flashcards"))
		return nil, NewServiceError("flashcards", "generate", "failed to create deck", err)
	}

	s.mu.Lock()
	decks := make([]domain.FlashcardDeck, 0, len(s.decks)+1)
	decks = append(decks, *deck)
	decks = append(decks, s.decks...)
	s.decks = decks
	s.current = deck.Clone()
	s.save(ctx)
	s.mu.Unlock()

	s.logger.Info("flashcard deck generated",
		"deck_id", deck.ID,
		"note_id", deck.NoteID,
		"card_count", len(deck.Flashcards))
	s.state.emit(ctx, events.ActionDeckGenerated)
	s.notifier.Notify(ctx, notify.Success("Flashcards generated successfully"))
	return deck.Clone(), nil
}

// SetCurrent selects deck, or clears the selection when deck is nil.
func (s *FlashcardService) SetCurrent(ctx context.Context, deck *domain.FlashcardDeck) {
	s.mu.Lock()
	s.current = deck.Clone()
	s.save(ctx)
	s.mu.Unlock()

	s.state.emit(ctx, events.ActionCurrentDeck)
}

// Select makes the stored deck with id current.
func (s *FlashcardService) Select(ctx context.Context, id string) (*domain.FlashcardDeck, bool) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, false
	}
	s.current = s.decks[i].Clone()
	s.save(ctx)
	deck := s.current.Clone()
	s.mu.Unlock()

	s.state.emit(ctx, events.ActionCurrentDeck)
	return deck, true
}

// Current returns the selected deck.
func (s *FlashcardService) Current() (*domain.FlashcardDeck, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, false
	}
	return s.current.Clone(), true
}

// Decks returns every deck, newest first.
func (s *FlashcardService) Decks() []domain.FlashcardDeck {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.FlashcardDeck, 0, len(s.decks))
	for i := range s.decks {
		out = append(out, *s.decks[i].Clone())
	}
	return out
}

// Deck returns the deck with id.
func (s *FlashcardService) Deck(id string) (*domain.FlashcardDeck, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.decks[i].Clone(), true
}

// Stats counts decks and cards.
func (s *FlashcardService) Stats() DeckStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := DeckStats{Decks: len(s.decks)}
	for i := range s.decks {
		stats.Flashcards += len(s.decks[i].Flashcards)
	}
	return stats
}

// Reset drops every deck and the selection.
func (s *FlashcardService) Reset(ctx context.Context) {
	s.mu.Lock()
	s.decks = []domain.FlashcardDeck{}
	s.current = nil
	s.save(ctx)
	s.mu.Unlock()

	s.logger.Info("flashcard state reset")
	s.state.emit(ctx, events.ActionFlashcardsReset)
	s.notifier.Notify(ctx, notify.Success("All flashcard decks removed"))
}

// indexOf must be called with s.mu held.
func (s *FlashcardService) indexOf(id string) int {
	return slices.IndexFunc(s.decks, func(d domain.FlashcardDeck) bool { return d.ID == id })
}

// save must be called with s.mu held.
func (s *FlashcardService) save(ctx context.Context) {
	s.state.save(ctx, flashcardsSnapshot{Decks: s.decks, CurrentDeck: s.current})
}
