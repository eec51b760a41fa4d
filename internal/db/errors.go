package db

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint names referenced by callers that need to tell violations apart.
const (
	UsersEmailKey          = "users_email_key"
	ApplicationsJobUserKey = "applications_job_user_key"
	ApplicationsJobFKey    = "applications_job_id_fkey"
	ApplicationsUserFKey   = "applications_user_id_fkey"
)

// SQLSTATE codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// ErrNotFound is returned by update operations whose target row does not exist.
// Lookups return (nil, nil) instead.
var ErrNotFound = errors.New("record not found")

// ConflictError indicates a unique constraint rejected a write.
type ConflictError struct {
	Constraint string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("unique constraint violated: %s", e.Constraint)
}

// ReferenceError indicates a foreign key rejected a write.
type ReferenceError struct {
	Constraint string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("foreign key violated: %s", e.Constraint)
}

// UnavailableError indicates the store could not be reached in time.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// IsConflict reports whether err is a unique violation on the named constraint.
func IsConflict(err error, constraint string) bool {
	var ce *ConflictError
	return errors.As(err, &ce) && ce.Constraint == constraint
}

// IsUnavailable reports whether err means the store was unreachable or timed out.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

// classify converts driver errors into the package's typed errors.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return &ConflictError{Constraint: pgErr.ConstraintName}
		case codeForeignKeyViolation:
			return &ReferenceError{Constraint: pgErr.ConstraintName}
		}
		return fmt.Errorf("failed to %s: %w", op, err)
	}

	if isUnavailable(err) {
		return &UnavailableError{Op: op, Err: err}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
