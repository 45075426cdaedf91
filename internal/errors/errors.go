package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the mapping pipeline's failure categories.
var (
	// ErrMalformedPayload - a stored body could not be parsed as its provider shape
	// (folded to a diagnostic mapped result, never propagated to callers)
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrMapperNotFound - no adapter registered for a classified type
	// (a configuration fault: the registry must cover the closed type set)
	ErrMapperNotFound = errors.New("mapper not found")

	// ErrInvalidRecord - a stored record is missing fields the pipeline requires
	ErrInvalidRecord = errors.New("invalid record")

	// ErrInternal - anything else, including recovered adapter panics
	ErrInternal = errors.New("internal error")
)

// Wrap wraps an error with context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsCategory checks if an error belongs to a specific category.
func IsCategory(err error, category error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, category)
}

// MalformedPayload wraps a message as a malformed-payload error.
func MalformedPayload(message string) error {
	return fmt.Errorf("%s: %w", message, ErrMalformedPayload)
}

// MapperNotFound wraps a message as a mapper-not-found error.
func MapperNotFound(message string) error {
	return fmt.Errorf("%s: %w", message, ErrMapperNotFound)
}

// InvalidRecord wraps a message as an invalid-record error.
func InvalidRecord(message string) error {
	return fmt.Errorf("%s: %w", message, ErrInvalidRecord)
}

// Internal wraps a message as an internal error.
func Internal(message string) error {
	return fmt.Errorf("%s: %w", message, ErrInternal)
}
