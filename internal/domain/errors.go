package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fare search engine.
var (
	// ErrInvalidParams indicates malformed or incomplete search parameters.
	// It is raised at the boundary and never sent downstream.
	ErrInvalidParams = errors.New("invalid search parameters")

	// ErrNoTicketsFound indicates that every date-pair query failed or that
	// no query returned candidates. It is an outcome, not a crash.
	ErrNoTicketsFound = errors.New("no tickets found")

	// ErrMalformedResponse indicates the fare API returned a body that could
	// not be decoded.
	ErrMalformedResponse = errors.New("malformed fare API response")

	// ErrExtractionFailed indicates the NLP extractor returned no usable
	// parameter object for the given text.
	ErrExtractionFailed = errors.New("parameter extraction failed")
)

// QueryError wraps the failure of a single date-pair query with context about
// which pair failed and whether the failure is worth retrying.
type QueryError struct {
	// Pair is the date pair whose query failed
	Pair DatePair

	// Err is the underlying error
	Err error

	// Retryable indicates whether retrying this query might succeed
	Retryable bool
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s: %v", e.Pair.Key(), e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError creates a non-retryable query error.
func NewQueryError(pair DatePair, err error) *QueryError {
	return &QueryError{Pair: pair, Err: err, Retryable: false}
}

// NewRetryableQueryError creates a retryable query error (network-level
// failures, rate limiting).
func NewRetryableQueryError(pair DatePair, err error) *QueryError {
	return &QueryError{Pair: pair, Err: err, Retryable: true}
}

// APIError indicates the fare API responded but signaled failure.
type APIError struct {
	// Status is the HTTP status code of the failed response
	Status int

	// Message is the error message extracted from the response body, if any
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("fare API error: status %d", e.Status)
	}
	return fmt.Sprintf("fare API error: status %d: %s", e.Status, e.Message)
}

// ValidationError represents a field-level validation failure at the
// parameter boundary.
type ValidationError struct {
	// Field is the parameter field that failed validation
	Field string

	// Message describes what is wrong with the field
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// NewValidationError creates a field-level validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// WrapInvalidParams wraps a formatted message with ErrInvalidParams so callers
// can match it with errors.Is.
func WrapInvalidParams(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
}

// IsInvalidParams reports whether err is (or wraps) ErrInvalidParams.
func IsInvalidParams(err error) bool {
	return errors.Is(err, ErrInvalidParams)
}

// IsNoTicketsFound reports whether err is (or wraps) ErrNoTicketsFound.
func IsNoTicketsFound(err error) bool {
	return errors.Is(err, ErrNoTicketsFound)
}

// IsRetryable reports whether err is a retryable query error.
func IsRetryable(err error) bool {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Retryable
	}
	return false
}

// IsAPIError reports whether err is (or wraps) an APIError, returning it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
