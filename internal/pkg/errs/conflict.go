package errs

import (
	"errors"
	"fmt"
)

var ErrConflict = errors.New("conflict")

// ConflictError reports a concurrent write on Resource. The caller should
// retry the whole operation.
type ConflictError struct {
	Resource string
	Cause    error
}

func NewConflictError(resource string) *ConflictError {
	return &ConflictError{
		Resource: resource,
	}
}

func NewConflictErrorWithCause(resource string, cause error) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Cause:    cause,
	}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrConflict, e.Resource, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConflict, e.Resource)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
