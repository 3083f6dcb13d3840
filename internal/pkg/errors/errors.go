// Package errors provides standardized API error types.
package errors

import (
	"fmt"
	"net/http"
)

// APIError represents a standardized API error response.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error with a custom message.
func (e *APIError) WithMessage(message string) *APIError {
	return &APIError{
		Code:       e.Code,
		Message:    message,
		StatusCode: e.StatusCode,
		Details:    e.Details,
	}
}

// Standard error definitions
var (
	// ErrUnauthorized is returned when authentication is required but missing or invalid.
	ErrUnauthorized = &APIError{
		Code:       "unauthorized",
		Message:    "Please sign in to continue",
		StatusCode: http.StatusUnauthorized,
	}

	// ErrForbidden is returned when the user lacks permission for an action.
	ErrForbidden = &APIError{
		Code:       "forbidden",
		Message:    "You don't have permission to perform this action",
		StatusCode: http.StatusForbidden,
	}

	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = &APIError{
		Code:       "not_found",
		Message:    "Resource not found",
		StatusCode: http.StatusNotFound,
	}

	// ErrBadRequest is returned when the request is malformed.
	ErrBadRequest = &APIError{
		Code:       "bad_request",
		Message:    "Invalid request",
		StatusCode: http.StatusBadRequest,
	}

	// ErrRateLimited is returned when rate limits are exceeded.
	ErrRateLimited = &APIError{
		Code:       "rate_limited",
		Message:    "Too many requests. Please try again later.",
		StatusCode: http.StatusTooManyRequests,
	}

	// ErrInternal is returned for unexpected server errors.
	// Remote failures surface this generic message; only auth errors are specific.
	ErrInternal = &APIError{
		Code:       "internal_error",
		Message:    "Something went wrong. Please try again.",
		StatusCode: http.StatusInternalServerError,
	}

	// ErrConflict is returned when a resource already exists.
	ErrConflict = &APIError{
		Code:       "conflict",
		Message:    "Resource already exists",
		StatusCode: http.StatusConflict,
	}
)

// Authentication errors carry specific user-facing messages, mapped per
// condition the way the sign-in and sign-up forms expect them.
var (
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = &APIError{
		Code:       "email_taken",
		Message:    "This email is already registered. Please sign in instead.",
		StatusCode: http.StatusConflict,
	}

	// ErrUnknownAccount is returned when no account matches the email.
	ErrUnknownAccount = &APIError{
		Code:       "unknown_account",
		Message:    "No account found with this email.",
		StatusCode: http.StatusUnauthorized,
	}

	// ErrWrongPassword is returned when the password doesn't match.
	ErrWrongPassword = &APIError{
		Code:       "wrong_password",
		Message:    "Incorrect password. Please try again.",
		StatusCode: http.StatusUnauthorized,
	}

	// ErrEmailNotVerified is returned when signing in before verifying the email.
	ErrEmailNotVerified = &APIError{
		Code:       "email_not_verified",
		Message:    "Please verify your email before signing in.",
		StatusCode: http.StatusUnauthorized,
	}

	// ErrInvalidToken is returned for expired or unknown verification tokens.
	ErrInvalidToken = &APIError{
		Code:       "invalid_token",
		Message:    "This verification link is invalid or has expired.",
		StatusCode: http.StatusBadRequest,
	}
)

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *APIError {
	return &APIError{
		Code:       "validation_error",
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details: map[string]string{
			"field": field,
		},
	}
}

// NewValidationErrors creates a validation error with multiple field errors.
func NewValidationErrors(errors map[string]string) *APIError {
	return &APIError{
		Code:       "validation_error",
		Message:    "One or more fields failed validation",
		StatusCode: http.StatusBadRequest,
		Details:    errors,
	}
}

// NewNotFoundError creates a not found error for a specific resource type.
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Code:       "not_found",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

// IsNotFound reports whether an error is a not found APIError.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Code == ErrNotFound.Code
}

// IsAPIError checks if an error is an APIError.
func IsAPIError(err error) bool {
	_, ok := err.(*APIError)
	return ok
}

// AsAPIError converts an error to an APIError if possible.
// Returns ErrInternal if the error is not an APIError.
func AsAPIError(err error) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return ErrInternal
}
