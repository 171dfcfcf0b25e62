package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the addressed row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists means the row would duplicate an existing one.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrTokenRejected means an identity or captcha token did not verify.
	ErrTokenRejected = errors.New("token rejected")
)

// ValidationError describes a bad request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a *ValidationError.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// FetchError is returned when the listing page cannot be retrieved.
// StatusCode is zero for transport failures.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError is returned when markup cannot be parsed at all.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse markup: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// IngestError is returned when a scrape batch could not be stored.
// Nothing from the batch was persisted.
type IngestError struct {
	Err error
}

func (e *IngestError) Error() string { return fmt.Sprintf("ingest batch: %v", e.Err) }

func (e *IngestError) Unwrap() error { return e.Err }
