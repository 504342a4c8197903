package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/scry-notes/internal/domain"
)

// Error handling principles:
// 1. Expected outcomes (bad credentials, taken email, blank input) are domain
//    sentinels returned as-is so callers can use errors.Is
// 2. Lookup misses are not errors
// 3. Unexpected failures are wrapped in ServiceError with the operation name
var (
	// ErrNotAuthenticated indicates an action that needs a session ran without one.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// ServiceError wraps errors from a state owner with context.
type ServiceError struct {
	// Service is the owner that failed, e.g. "notes"
	Service string
	// Operation is the operation that failed, e.g. "create_service", "register"
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
// It returns known sentinel errors directly without wrapping.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range []error{
		domain.ErrInvalidCredentials,
		domain.ErrUserExists,
		domain.ErrEmptyInput,
		ErrNotAuthenticated,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

func missingDependency(service, name string) error {
	return &ServiceError{
		Service:   service,
		Operation: "create_service",
		Message:   name + " cannot be nil",
	}
}
