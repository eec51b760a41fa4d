// Package server provides the HTTP REST API for the job board.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/db"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrDuplicateApplication indicates the user already applied to the job
type ErrDuplicateApplication struct {
	JobID uuid.UUID
}

func (e *ErrDuplicateApplication) Error() string {
	return "already applied to this job"
}

// ErrInvalidCredentials indicates invalid login credentials.
// Unknown email and wrong password are deliberately indistinguishable.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrTokenMissing indicates a protected operation was called without a bearer token
type ErrTokenMissing struct{}

func (e *ErrTokenMissing) Error() string {
	return "token missing"
}

// ErrTokenInvalid indicates a bearer token failed verification
type ErrTokenInvalid struct {
	Reason string
}

func (e *ErrTokenInvalid) Error() string {
	if e.Reason == "" {
		return "token invalid"
	}
	return "token invalid: " + e.Reason
}

// ErrNotFound indicates a referenced job, user or application does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ErrStoreUnavailable indicates the store could not be reached in time
type ErrStoreUnavailable struct {
	Op  string
	Err error
}

func (e *ErrStoreUnavailable) Error() string {
	return "service temporarily unavailable"
}

func (e *ErrStoreUnavailable) Unwrap() error {
	return e.Err
}

// ErrForbidden indicates the caller lacks the admin key
type ErrForbidden struct{}

func (e *ErrForbidden) Error() string {
	return "forbidden"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation   *ErrValidation
		emailExists  *ErrEmailAlreadyExists
		duplicate    *ErrDuplicateApplication
		credentials  *ErrInvalidCredentials
		tokenMissing *ErrTokenMissing
		tokenInvalid *ErrTokenInvalid
		notFound     *ErrNotFound
		unavailable  *ErrStoreUnavailable
		forbidden    *ErrForbidden
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &emailExists), errors.As(err, &duplicate):
		return http.StatusConflict
	case errors.As(err, &credentials), errors.As(err, &tokenMissing), errors.As(err, &tokenInvalid):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the message safe to show a client for err.
func publicMessage(err error) string {
	switch HTTPStatus(err) {
	case http.StatusInternalServerError:
		return "internal server error"
	case http.StatusUnauthorized:
		var credentials *ErrInvalidCredentials
		if errors.As(err, &credentials) {
			return credentials.Error()
		}
		return "unauthorized"
	default:
		return err.Error()
	}
}

// storeError converts store unavailability into ErrStoreUnavailable and wraps
// anything else with op.
func storeError(op string, err error) error {
	if db.IsUnavailable(err) {
		return &ErrStoreUnavailable{Op: op, Err: err}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
