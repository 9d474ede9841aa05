// Package errors provides structured error types for the artistgraph
// command line and HTTP API.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes in JSON error responses
//   - User-friendly error messages
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND, NO_PATH: Query misses
//   - NETWORK_*, RATE_LIMITED: Upstream failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "n must be positive: %d", n)
//
//	// Classify a query error from pkg/graph
//	_, err = g.ShortestPath(from, to)
//	status := errors.HTTPStatus(errors.GetCode(errors.Classify(err)))
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/matzehuels/artistgraph/pkg/graph"
	"github.com/matzehuels/artistgraph/pkg/integrations"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidLayout Code = "INVALID_LAYOUT"

	// Query misses
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeArtistNotFound Code = "ARTIST_NOT_FOUND"
	ErrCodeNoPath         Code = "NO_PATH"

	// Upstream errors
	ErrCodeNetwork      Code = "NETWORK_ERROR"
	ErrCodeTimeout      Code = "TIMEOUT"
	ErrCodeRateLimited  Code = "RATE_LIMITED"
	ErrCodeUnauthorized Code = "UNAUTHORIZED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Classify wraps err in an *Error whose code reflects the sentinel it
// matches. Errors that already carry a code are returned unchanged; nil
// stays nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}

	var code Code
	msg := err.Error()
	switch {
	case errors.Is(err, graph.ErrArtistNotFound):
		code = ErrCodeArtistNotFound
	case errors.Is(err, graph.ErrNoPath):
		code = ErrCodeNoPath
	case errors.Is(err, integrations.ErrNotFound):
		code = ErrCodeNotFound
	case errors.Is(err, integrations.ErrRateLimited):
		code = ErrCodeRateLimited
	case errors.Is(err, integrations.ErrUnauthorized):
		code = ErrCodeUnauthorized
	case errors.Is(err, integrations.ErrNetwork):
		code = ErrCodeNetwork
	case errors.Is(err, context.DeadlineExceeded):
		code = ErrCodeTimeout
	default:
		code, msg = ErrCodeInternal, "internal error"
	}
	return &Error{Code: code, Message: msg, Cause: err}
}

// HTTPStatus maps an error code to the HTTP status served for it.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidLayout:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeArtistNotFound, ErrCodeNoPath:
		return http.StatusNotFound
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeNetwork, ErrCodeUnauthorized:
		return http.StatusBadGateway
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
