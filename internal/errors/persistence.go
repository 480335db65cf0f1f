package errors

import (
	stdErrors "errors"
	"fmt"
)

// PersistenceError represents a database failure: connecting, ensuring the
// destination table, or inserting records.
type PersistenceError struct {
	Op  string // the operation that failed, e.g. "connect", "insert"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError creates a PersistenceError for the given operation.
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// IsPersistenceError reports whether err is a PersistenceError (even when wrapped).
func IsPersistenceError(err error) bool {
	var persistErr *PersistenceError
	return stdErrors.As(err, &persistErr)
}
