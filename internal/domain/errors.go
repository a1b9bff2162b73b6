// Package domain provides the canonical types and error taxonomy for the
// wallet companion gateway.
package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of an API error.
type ErrorType string

const (
	// ErrorTypeInvalidRequest indicates a malformed or invalid request.
	ErrorTypeInvalidRequest ErrorType = "invalid_request"

	// ErrorTypeAuthentication indicates a missing or unknown API key.
	ErrorTypeAuthentication ErrorType = "authentication"

	// ErrorTypePermission indicates a scope or tier authorization failure.
	ErrorTypePermission ErrorType = "permission"

	// ErrorTypeNotFound indicates a resource was not found.
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeNotImplemented indicates an intent kind this service does
	// not execute.
	ErrorTypeNotImplemented ErrorType = "not_implemented"

	// ErrorTypeBadGateway indicates an upstream or provider failure.
	ErrorTypeBadGateway ErrorType = "bad_gateway"

	// ErrorTypeUpstream carries a verbatim upstream 4xx status and body.
	ErrorTypeUpstream ErrorType = "upstream"

	// ErrorTypeConfig indicates missing or invalid service configuration.
	// This is an operator problem, never client-caused.
	ErrorTypeConfig ErrorType = "config"

	// ErrorTypeServer indicates an internal server error.
	ErrorTypeServer ErrorType = "server"
)

// APIError is the canonical error surfaced by every component. Handlers
// translate it into a structured HTTP response.
type APIError struct {
	// Type is the category of error
	Type ErrorType `json:"type"`

	// Message is the human-readable error message
	Message string `json:"message"`

	// StatusCode overrides the type's default HTTP status when non-zero,
	// used for verbatim upstream passthrough.
	StatusCode int `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// HTTPStatusCode returns the HTTP status code for this error.
func (e *APIError) HTTPStatusCode() int {
	if e.StatusCode != 0 {
		return e.StatusCode
	}

	switch e.Type {
	case ErrorTypeInvalidRequest:
		return http.StatusBadRequest
	case ErrorTypeAuthentication:
		return http.StatusUnauthorized
	case ErrorTypePermission:
		return http.StatusForbidden
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeNotImplemented:
		return http.StatusNotImplemented
	case ErrorTypeBadGateway:
		return http.StatusBadGateway
	case ErrorTypeConfig, ErrorTypeServer:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// WithStatusCode sets a specific HTTP status code.
func (e *APIError) WithStatusCode(code int) *APIError {
	e.StatusCode = code
	return e
}

// NewAPIError creates a new API error.
func NewAPIError(errType ErrorType, message string) *APIError {
	return &APIError{
		Type:    errType,
		Message: message,
	}
}

// Convenience constructors for common errors

// ErrInvalidRequest creates an invalid request error.
func ErrInvalidRequest(message string) *APIError {
	return NewAPIError(ErrorTypeInvalidRequest, message)
}

// ErrAuthentication creates an authentication error.
func ErrAuthentication(message string) *APIError {
	return NewAPIError(ErrorTypeAuthentication, message)
}

// ErrPermission creates a permission error.
func ErrPermission(message string) *APIError {
	return NewAPIError(ErrorTypePermission, message)
}

// ErrNotImplemented creates a not implemented error.
func ErrNotImplemented(message string) *APIError {
	return NewAPIError(ErrorTypeNotImplemented, message)
}

// ErrBadGateway creates a bad gateway error.
func ErrBadGateway(message string) *APIError {
	return NewAPIError(ErrorTypeBadGateway, message)
}

// ErrUpstream creates a passthrough error carrying an upstream 4xx status
// and its response body.
func ErrUpstream(statusCode int, body string) *APIError {
	return NewAPIError(ErrorTypeUpstream, body).WithStatusCode(statusCode)
}

// ErrConfig creates a configuration error.
func ErrConfig(message string) *APIError {
	return NewAPIError(ErrorTypeConfig, message)
}

// ErrServer creates an internal server error.
func ErrServer(message string) *APIError {
	return NewAPIError(ErrorTypeServer, message)
}

// AsAPIError extracts an *APIError from err, or wraps err as a server
// error so callers always have a status to write.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return ErrServer(err.Error())
}
