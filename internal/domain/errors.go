// Package domain contains the core business entities and rules.
// These types have no knowledge of databases, HTTP, or any infrastructure concerns.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errors for the closed set of expected failures. Anything else returned by a
// service is a fault.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidCredential = errors.New("current password is incorrect")

	// ErrInvalidLogin is returned when an email/password pair does not match
	// any account.
	ErrInvalidLogin = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
)

// ValidationError carries the field-keyed messages of a rejected input.
type ValidationError struct {
	Errors ErrorMap
}

// NewValidationError wraps a non-empty error map.
func NewValidationError(errs ErrorMap) *ValidationError {
	return &ValidationError{Errors: errs}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, e.Errors.Len())
	for _, field := range e.Errors.Fields() {
		msg, _ := e.Errors.Get(field)
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError reports a resource that is absent or not visible to the
// caller. The two cases are reported identically.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found or not authorized"
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
