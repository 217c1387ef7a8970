package errs

import (
	"errors"
	"fmt"
)

var ErrPermissionDenied = errors.New("permission denied")

// PermissionDeniedError reports that Subject may not perform Action.
// Retrying without a privilege change will fail again.
type PermissionDeniedError struct {
	Subject string
	Action  string
	Cause   error
}

func NewPermissionDeniedError(subject string, action string) *PermissionDeniedError {
	return &PermissionDeniedError{
		Subject: subject,
		Action:  action,
	}
}

func NewPermissionDeniedErrorWithCause(subject string, action string, cause error) *PermissionDeniedError {
	return &PermissionDeniedError{
		Subject: subject,
		Action:  action,
		Cause:   cause,
	}
}

func (e *PermissionDeniedError) Error() string {
	msg := fmt.Sprintf("%s: %s may not %s", ErrPermissionDenied, e.Subject, e.Action)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}
