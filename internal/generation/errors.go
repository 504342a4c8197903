package generation

import (
	"errors"

	"github.com/phrazzld/scry-notes/internal/domain"
)

// Common errors returned by the generation package
var (
	// ErrEmptyInput is returned when the text to summarize is blank.
	// It is the domain sentinel so callers can match either name.
	ErrEmptyInput = domain.ErrEmptyInput

	// ErrNilNote is returned when a generator is handed a nil note.
	ErrNilNote = errors.New("note cannot be nil")
)
