package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for precondition failures. The store is always left
// untouched when one of these is returned.
var (
	ErrNotAuthenticated  = errors.New("no active session")
	ErrAdminRequired     = errors.New("admin role required")
	ErrInvalidEmail      = errors.New("no account with that email")
	ErrEmailTaken        = errors.New("email already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrCourseNotFound    = errors.New("course not found")
	ErrAdminLimitReached = fmt.Errorf("admin limit of %d reached", 10)
)

// PermissionError carries the who/what/why of a denied operation.
type PermissionError struct {
	UserID    string
	Resource  string
	Operation string
	Reason    string
}

func NewPermissionError(userID, resource, operation, reason string) *PermissionError {
	return &PermissionError{
		UserID:    userID,
		Resource:  resource,
		Operation: operation,
		Reason:    reason,
	}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s: %s", e.UserID, e.Operation, e.Resource, e.Reason)
}
