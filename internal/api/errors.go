package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scry-notes/internal/api/shared"
	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/service"
	"github.com/phrazzld/scry-notes/internal/store"
)

// Lookup misses. Services report these as a false flag; handlers turn
// them into errors so they go through the same mapping.
var (
	ErrNoteNotFound = fmt.Errorf("%w: note", store.ErrNotFound)
	ErrDeckNotFound = fmt.Errorf("%w: deck", store.ErrNotFound)
	ErrNoSelection  = fmt.Errorf("%w: nothing selected", store.ErrNotFound)
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking their types to clients.
//
// Mapping:
//   - 401: bad credentials or no logged-in user
//   - 404: any lookup miss (store.ErrNotFound and the handler sentinels)
//   - 409: registering an email that already has an account
//   - 400: empty input, invalid email, failed validation, empty body
//   - 500: everything else
//
// Errors are matched with errors.Is and errors.As, so wrapped errors map
// the same as the sentinels they wrap.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, service.ErrNotAuthenticated):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict

	case errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err. Validator
// failures are summarized by SanitizeValidationError; anything unrecognized
// gets a generic message so internal details such as file paths never reach
// the client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, service.ErrNotAuthenticated):
		return "Login required"
	case errors.Is(err, ErrNoteNotFound):
		return "Note not found"
	case errors.Is(err, ErrDeckNotFound):
		return "Deck not found"
	case errors.Is(err, ErrNoSelection):
		return "Nothing is selected"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"
	case errors.Is(err, domain.ErrUserExists):
		return "User already exists"
	case errors.Is(err, domain.ErrEmptyInput):
		return "Input text cannot be empty"
	case errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrInvalidEmail):
		return "Please enter a valid email address"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	default:
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return SanitizeValidationError(err)
		}
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns the first validator failure into a short
// message naming the field and the broken rule.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the mapped status and safe message for err.
// An empty fallback keeps the mapped message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	msg := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		msg = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err, opts...)
}
