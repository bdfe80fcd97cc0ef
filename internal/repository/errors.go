// Package repository implements the record store: one repository per
// persisted collection, plus an admin repository for cross-collection
// operations.
package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an update targets a record that does not
// exist. Read paths signal absence with a nil record instead.
var ErrNotFound = errors.New("record not found")

// StorageError wraps an underlying persistence failure (corruption, locked
// store, quota). Callers treat these as non-fatal where the contract allows:
// seeding logs and continues, the API maps them to a 500.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
