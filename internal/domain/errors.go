// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned when a login attempt does not match
	// any registered account.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists is returned when registering an email that is already taken.
	// Email comparison is exact and case-sensitive.
	ErrUserExists = errors.New("user already exists")

	// ErrEmptyInput is returned when text handed to a generator is blank.
	ErrEmptyInput = errors.New("input text cannot be empty")
)
