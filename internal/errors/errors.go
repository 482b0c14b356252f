// Package errors provides custom error types for the spendwise API.
// All service-layer errors should use AppError so that validation and
// authorization failures reach the caller verbatim while persistence
// failures are reduced to a generic internal error.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError of the same class.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Unauthorized", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrValidation    = &AppError{Code: "VALIDATION_ERROR", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound      = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrAlreadyExists = &AppError{Code: "ALREADY_EXISTS", Message: "Resource already exists", StatusCode: http.StatusConflict}
	ErrInternal      = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound  = WithMessage(ErrNotFound, "User not found")
	ErrUsernameTaken = WithMessage(ErrAlreadyExists, "Username already exists")
)

// Transaction errors.
var (
	ErrTransactionNotFound = WithMessage(ErrNotFound, "Transaction not found")
	ErrMissingFields       = WithMessage(ErrValidation, "All fields must be filled out")
	ErrNonPositiveAmount   = WithMessage(ErrValidation, "Amount must be a positive number")
	ErrNoFieldsToUpdate    = WithMessage(ErrValidation, "No fields to update")
)

// Tag errors.
var (
	ErrTagNotFound       = WithMessage(ErrNotFound, "Tag not found")
	ErrTagExists         = WithMessage(ErrAlreadyExists, "Tag already exists")
	ErrCustomTagNotFound = WithMessage(ErrNotFound, "Custom tag not found")
)
