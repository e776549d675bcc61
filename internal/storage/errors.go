package storage

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when no record is stored under a key
	ErrNotFound = errors.New("record not found")

	// ErrInvalidRecord is returned when a record cannot be stored as given
	ErrInvalidRecord = errors.New("invalid record")
)

// NotFoundError represents an error when a record is not found
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record with key %q not found", e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidRecordError represents a record that violates the store key rules
type InvalidRecordError struct {
	Key     string
	Message string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid record %q: %s", e.Key, e.Message)
}

func (e *InvalidRecordError) Is(target error) bool {
	return target == ErrInvalidRecord
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(key string) error {
	return &NotFoundError{Key: key}
}

// NewInvalidRecordError creates a new InvalidRecordError
func NewInvalidRecordError(key, message string) error {
	return &InvalidRecordError{Key: key, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidRecord checks if an error is an invalid record error
func IsInvalidRecord(err error) bool {
	return errors.Is(err, ErrInvalidRecord)
}
