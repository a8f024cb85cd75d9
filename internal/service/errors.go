package service

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed batch input. Index is the offending item
// position, or -1 when the error is not tied to one item.
type ValidationError struct {
	Index   int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		if e.Field == "" {
			return e.Message
		}
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Field == "" {
		return fmt.Sprintf("item %d: %s", e.Index, e.Message)
	}
	return fmt.Sprintf("item %d: %s: %s", e.Index, e.Field, e.Message)
}

// ConflictError means the rater already has ratings for a batch submitted
// without update confirmation
type ConflictError struct {
	ExistingCount int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("existing ratings found (%d), confirmation required", e.ExistingCount)
}

// NotFoundError represents a missing referenced resource
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is enables errors.Is matching on any NotFoundError
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// ErrNotFound matches every NotFoundError with errors.Is
var ErrNotFound = &NotFoundError{}

// ForbiddenError means the actor may not perform the operation
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// PersistenceError wraps a storage failure
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistence(op string, err error) error {
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
