// Package apperr defines the error kinds surfaced by services. Handlers map
// them to HTTP responses in one place (response.FromError); services never
// touch status codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the referenced entity id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict: uniqueness violation or a structural precondition
	// (category has children / has products) blocks the operation.
	ErrConflict = errors.New("conflict")
	// ErrValidation: input shape or content invalid; carries field detail.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized: authenticated but wrong role.
	ErrUnauthorized = errors.New("forbidden")
)

// NotFound wraps ErrNotFound naming the missing entity.
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// Conflict wraps ErrConflict with a user-facing reason.
func Conflict(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

// ValidationError reports which fields are invalid and why.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validation builds a single-field validation error.
func Validation(field, reason string) error {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// FieldsOf extracts the field detail from a validation error, or nil.
func FieldsOf(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
