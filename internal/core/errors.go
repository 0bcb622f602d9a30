package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFields is returned when an edit supplies zero fields to change.
	// Distinguished from ErrNotFound: no write is attempted at all.
	ErrNoFields = errors.New("no fields to update")

	// ErrNotFound is returned when an edit targets an id that does not exist.
	ErrNotFound = errors.New("expense not found")
)

// ValidationError reports a missing or malformed required field on create.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// StorageError wraps an I/O or engine failure from the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
