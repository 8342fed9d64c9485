package employee

import (
	"errors"
	"fmt"
)

// NotFoundError reports that the requested identity is absent from the
// record store. Terminal for the request; never retried.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Entity, e.ID)
}

// ConflictError reports a uniqueness violation on create.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("employee already exists with %s: %s", e.Field, e.Value)
}

// ImmutableFieldError reports an attempted mutation of a field that must not
// change after creation.
type ImmutableFieldError struct {
	Field string
}

func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("the %s of the employee cannot be updated", e.Field)
}

// LockError reports a failure while acquiring or holding the row lock for a
// balance increment. Retry policy belongs to the caller; the services never
// retry on their own.
type LockError struct {
	AccountID int64
	Err       error
}

func (e *LockError) Error() string {
	return fmt.Sprintf("lock salary account %d: %v", e.AccountID, e.Err)
}

func (e *LockError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsImmutable reports whether err is an ImmutableFieldError.
func IsImmutable(err error) bool {
	var target *ImmutableFieldError
	return errors.As(err, &target)
}

// IsRetryable reports whether the caller may retry the operation. Only lock
// acquisition failures qualify.
func IsRetryable(err error) bool {
	var target *LockError
	return errors.As(err, &target)
}
