package model

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned by repository calls when no owner could be
// resolved for the request.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrTaskNotFound is returned when a single-document read finds nothing.
var ErrTaskNotFound = errors.New("task not found")

// ErrUserNotFound is returned when no profile exists for a uid or email.
var ErrUserNotFound = errors.New("user not found")

// ValidationError reports malformed task or profile data. It is raised
// before any store call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// RepositoryError wraps any failure coming back from Firestore or Storage so
// handlers can surface one message without caring about the transport.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

func WrapRepository(op string, err error) *RepositoryError {
	return &RepositoryError{Op: op, Err: err}
}

func IsRepository(err error) bool {
	var r *RepositoryError
	return errors.As(err, &r)
}
