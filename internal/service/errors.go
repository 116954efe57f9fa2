// Package service provides application-level services for managing cards,
// users, and learning progress.
package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrInvalidCredentials indicates a login attempt with a wrong email or password.
	// API layer should map this to HTTP 401 Unauthorized without revealing
	// which of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// CardServiceError is a custom error type for card service errors.
type CardServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CardServiceError.
func (e *CardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("card service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("card service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CardServiceError) Unwrap() error {
	return e.Err
}

// NewCardServiceError creates a new CardServiceError.
func NewCardServiceError(operation, message string, err error) *CardServiceError {
	return &CardServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
