package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrSnapshotNotFound indicates that a partition has never been saved.
	ErrSnapshotNotFound = fmt.Errorf("%w: snapshot", ErrNotFound)

	// ErrInvalidPartition is returned for an empty or malformed partition name.
	ErrInvalidPartition = errors.New("invalid partition name")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Partition string // The partition involved (e.g., "notes")
	Operation string // The operation that failed (e.g., "load", "save")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Partition,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Partition, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given partition, operation, message, and wrapped error.
func NewStoreError(partition, operation, message string, err error) *StoreError {
	return &StoreError{
		Partition: partition,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
