package errs

import (
	"errors"
	"fmt"
	"strings"
)

// sanitize renders a value on a single line so that user-supplied input
// cannot break log lines or response messages.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// IsValidation reports whether err is one of the validation error kinds.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}
