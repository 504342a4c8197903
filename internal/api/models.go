package api

import "github.com/phrazzld/scry-notes/internal/domain"

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"max=72"`
}

// RegisterRequest defines the payload for the registration endpoint.
// bcrypt only reads the first 72 bytes of a password.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"max=100"`
	Password string `json:"password" validate:"max=72"`
}

// SessionResponse describes who, if anyone, is logged in.
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user"`
}

// UpdateNoteRequest sets any subset of a note's editable fields.
type UpdateNoteRequest struct {
	Title      *string   `json:"title,omitempty"       validate:"omitnil,max=200"`
	Content    *string   `json:"content,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
	SharedWith *[]string `json:"shared_with,omitempty"`
	IsPublic   *bool     `json:"is_public,omitempty"`
}

// toUpdate converts the request to the service's update type.
func (r UpdateNoteRequest) toUpdate() domain.NoteUpdate {
	return domain.NoteUpdate{
		Title:      r.Title,
		Content:    r.Content,
		Tags:       r.Tags,
		SharedWith: r.SharedWith,
		IsPublic:   r.IsPublic,
	}
}

// ShareNoteRequest names who to share a note with.
type ShareNoteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TagRequest carries one tag. Blank and duplicate tags are reported by
// the note service.
type TagRequest struct {
	Tag string `json:"tag" validate:"max=50"`
}

// SummarizeRequest carries the text to summarize.
type SummarizeRequest struct {
	Text string `json:"text"`
}

// SummaryResponse carries a generated summary.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// SaveSummaryRequest carries a summary to store as a note.
type SaveSummaryRequest struct {
	Summary string `json:"summary"`
}

// ImportResponse reports how many notes an import applied.
type ImportResponse struct {
	Imported int `json:"imported"`
}
