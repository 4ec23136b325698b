package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
)

// StoreError is a custom error type for store-specific errors with
// additional context.
type StoreError struct {
	Record    string // the record involved (e.g. "history", "used_texts")
	Operation string // the operation that failed (e.g. "load", "save")
	Err       error  // original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s operation on %s failed: %v", e.Operation, e.Record, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(record, operation string, err error) *StoreError {
	return &StoreError{
		Record:    record,
		Operation: operation,
		Err:       err,
	}
}
