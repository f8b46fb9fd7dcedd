package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is returned when the API rejects the stored session token.
var ErrUnauthorized = stdErrors.New("session expired")

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration or preference validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// APIError reports an unexpected HTTP status from the game API.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
}

// NewAPIError constructs an APIError. An empty message falls back to the
// canonical status text.
func NewAPIError(operation string, status int, message string) error {
	if message == "" {
		message = fmt.Sprintf("%d %s", status, http.StatusText(status))
	}
	return &APIError{Operation: operation, StatusCode: status, Message: message}
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Operation != "" {
		return fmt.Sprintf("api error [%s]: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("api error: %s", e.Message)
}

// Is lets a 401 APIError match ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	if e == nil {
		return false
	}
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// StatusCode extracts the HTTP status from an APIError chain, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if stdErrors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// ProviderError indicates an image provider failed for a single card slot.
type ProviderError struct {
	Theme string
	Index int
	Err   error
}

// NewProviderError constructs a ProviderError for the given theme and slot.
func NewProviderError(theme string, index int, err error) error {
	return &ProviderError{Theme: theme, Index: index, Err: err}
}

func (e *ProviderError) Error() string {
	if e == nil {
		return ""
	}
	if e.Index > 0 {
		return fmt.Sprintf("provider error [%s #%d]: %v", e.Theme, e.Index, e.Err)
	}
	return fmt.Sprintf("provider error [%s]: %v", e.Theme, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ProviderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
