package services

import (
	"errors"

	playgroundvalidator "github.com/go-playground/validator/v10"
	apperrors "github.com/quizdesk/quiz-service/internal/errors"
)

var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid admin password")
	ErrInternalError      = errors.New("internal server error")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	if errors.As(err, &single) {
		return true
	}
	var structErrs playgroundvalidator.ValidationErrors
	return errors.As(err, &structErrs)
}

// IsUnauthorized checks if error represents a failed admin login
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}
