// Package errors defines structured application errors for the Minerva
// screening service. Errors carry a stable machine code, an HTTP status and
// optional detail metadata so the HTTP layer can translate them uniformly.
package errors

import (
	"fmt"
	"net/http"
)

// Error codes exposed in API responses.
const (
	ErrCodeInternal           = "internal_error"
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeNotFound           = "not_found"
	ErrCodeRateLimitExceeded  = "rate_limit_exceeded"
	ErrCodeServiceUnavailable = "service_unavailable"
)

// AppError represents a structured application error.
type AppError struct {
	Code        string
	HTTPStatus  int
	Message     string
	Description string
	Details     map[string]string
	cause       error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithError returns a copy of the error carrying a cause.
func (e *AppError) WithError(cause error) *AppError {
	clone := e.clone()
	clone.cause = cause
	return clone
}

// WithDescription returns a copy of the error with a human-readable description.
func (e *AppError) WithDescription(description string) *AppError {
	clone := e.clone()
	clone.Description = description
	return clone
}

// WithDetail returns a copy of the error with an extra detail entry.
func (e *AppError) WithDetail(key, value string) *AppError {
	clone := e.clone()
	if clone.Details == nil {
		clone.Details = make(map[string]string)
	}
	clone.Details[key] = value
	return clone
}

func (e *AppError) clone() *AppError {
	details := make(map[string]string, len(e.Details))
	for k, v := range e.Details {
		details[k] = v
	}
	return &AppError{
		Code:        e.Code,
		HTTPStatus:  e.HTTPStatus,
		Message:     e.Message,
		Description: e.Description,
		Details:     details,
		cause:       e.cause,
	}
}

// New creates an AppError with the given code, HTTP status and message.
func New(code string, httpStatus int, message string) *AppError {
	return &AppError{
		Code:       code,
		HTTPStatus: httpStatus,
		Message:    message,
	}
}

// Predefined errors. Callers derive request-specific variants through the
// With* methods; the base values are never mutated.
var (
	ErrInternalServer = New(ErrCodeInternal, http.StatusInternalServerError,
		"internal server error")
	ErrInvalidRequest = New(ErrCodeInvalidRequest, http.StatusBadRequest,
		"the request is missing a required parameter or is otherwise malformed")
	ErrNotFound = New(ErrCodeNotFound, http.StatusNotFound,
		"the requested resource was not found")
	ErrRateLimitExceeded = New(ErrCodeRateLimitExceeded, http.StatusTooManyRequests,
		"rate limit exceeded, please try again later")
	ErrServiceUnavailable = New(ErrCodeServiceUnavailable, http.StatusServiceUnavailable,
		"service temporarily unavailable")
)

// AsAppError attempts to cast an error to an AppError.
func AsAppError(err error) (*AppError, bool) {
	appErr, ok := err.(*AppError)
	return appErr, ok
}

// IsNotFound reports whether the error is a not-found AppError.
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == ErrCodeNotFound
	}
	return false
}
