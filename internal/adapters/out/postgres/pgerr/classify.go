// Package pgerr maps PostgreSQL driver errors onto the domain error taxonomy.
package pgerr

import (
	"errors"

	"baggage/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Classify turns serialization failures, deadlocks, lock timeouts and unique
// violations into a ConflictError on resource. Other errors pass through.
func Classify(err error, resource string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.LockNotAvailable,
		pgerrcode.UniqueViolation:
		return errs.NewConflictErrorWithCause(resource, err)
	}
	return err
}

// IsConflict reports whether err carries one of the codes Classify maps to a conflict.
func IsConflict(err error) bool {
	return errors.Is(Classify(err, ""), errs.ErrConflict)
}
