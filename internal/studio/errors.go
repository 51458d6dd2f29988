package studio

import (
	"errors"
	"fmt"

	"codeberg.org/quickai/server/quickai/creations"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrFileTooLarge = errors.New("file too large")

	// the usage store could not be consulted or updated during admission
	ErrUsageUnavailable = errors.New("usage store unavailable")
)

// a rejected request; Message is safe to show to the user
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalidInput(format string, args ...any) error {
	return &ValidationError{Err: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func fileTooLarge(message string) error {
	return &ValidationError{Err: ErrFileTooLarge, Message: message}
}

// the external call succeeded but the creation could not be written.
// the generated content is carried so callers can log what was lost.
type PersistenceError struct {
	Type    creations.Type
	Content string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save %s creation: %v", e.Type, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
