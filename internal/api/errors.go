package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/wordvault/wordvault-api/internal/api/shared"
	"github.com/wordvault/wordvault-api/internal/domain"
	"github.com/wordvault/wordvault-api/internal/domain/srs"
	"github.com/wordvault/wordvault-api/internal/service"
	"github.com/wordvault/wordvault-api/internal/service/auth"
	"github.com/wordvault/wordvault-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors, including entity-specific ones
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors, including entity-specific ones
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, srs.ErrInvalidQuality),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password"

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this card"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"

	case store.IsNotFoundError(err):
		return "Not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"

	case store.IsDuplicateError(err):
		return "Already exists"

	// Bad request errors
	case errors.Is(err, srs.ErrInvalidQuality):
		return "Quality must be between 0 and 5"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes an error response using the standard status-code and
// message mapping. A non-empty userMessage overrides the mapped safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return fmt.Sprintf("Invalid %s: %s", vErr.Field, vErr.Message)
	}

	errMsg := err.Error()

	// Struct-tag failures look like:
	// "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
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
	case "gte", "lte":
		return "out of range"
	default:
		return "validation failed"
	}
}
