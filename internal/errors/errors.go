// FilePath: internal/errors/errors.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Error types
	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypeDatabase    ErrorType = "database"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeInternal    ErrorType = "internal"
	ErrorTypeUnavailable ErrorType = "service_unavailable"
)

// APIError represents a structured API error
type APIError struct {
	Type      ErrorType `json:"type"`
	Message   string    `json:"message"`
	Code      int       `json:"code"`
	RequestID string    `json:"request_id,omitempty"`
	Details   any       `json:"details,omitempty"`
	err       error     // Internal error for logging
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// WithRequestID adds a request ID to the error
func (e *APIError) WithRequestID(id string) *APIError {
	e.RequestID = id
	return e
}

// WithDetails adds additional details to the error
func (e *APIError) WithDetails(details any) *APIError {
	e.Details = details
	return e
}

func newAPIError(t ErrorType, code int, msg string, err error) *APIError {
	return &APIError{Type: t, Message: msg, Code: code, err: err}
}

// NewValidationError reports bad client input (400)
func NewValidationError(msg string, err error) *APIError {
	return newAPIError(ErrorTypeValidation, http.StatusBadRequest, msg, err)
}

// NewDatabaseError reports a failing archive query (500)
func NewDatabaseError(msg string, err error) *APIError {
	return newAPIError(ErrorTypeDatabase, http.StatusInternalServerError, msg, err)
}

// NewNotFoundError reports an unknown sensor or resource (404)
func NewNotFoundError(msg string, err error) *APIError {
	return newAPIError(ErrorTypeNotFound, http.StatusNotFound, msg, err)
}

func NewInternalError(msg string, err error) *APIError {
	return newAPIError(ErrorTypeInternal, http.StatusInternalServerError, msg, err)
}

// NewUnavailableError reports that no snapshot is ready yet (503)
func NewUnavailableError(msg string, err error) *APIError {
	return newAPIError(ErrorTypeUnavailable, http.StatusServiceUnavailable, msg, err)
}

// Unwrap exposes the internal error to errors.Is and errors.As
func (e *APIError) Unwrap() error {
	return e.err
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidation checks if an error is a Validation error
func IsValidation(err error) bool {
	return isType(err, ErrorTypeValidation)
}

func isType(err error, t ErrorType) bool {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Type == t
	}
	return false
}
