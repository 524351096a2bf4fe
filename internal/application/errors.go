package application

import (
	"errors"
	"fmt"

	"a11ytree/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedFormat = errors.New("unsupported source format")
	ErrInvalidCommand    = domain.ErrUnknownCommand
	ErrCycle             = errors.New("cycle in tree structure")
	ErrEmptyTree         = errors.New("tree has no items")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// SourceError represents a tree source that could not be read or parsed
type SourceError struct {
	Path   string
	Reason string
	Err    error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot load %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot load %s: %s", e.Path, e.Reason)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
