package auth

import "errors"

// Common password hashing errors
var (
	// ErrPasswordMismatch indicates a plaintext password does not match its stored hash
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrInvalidCost indicates a bcrypt cost outside bcrypt.MinCost..bcrypt.MaxCost
	ErrInvalidCost = errors.New("invalid bcrypt cost")
)
