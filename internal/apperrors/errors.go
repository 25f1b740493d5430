// Package apperrors defines the failure kinds surfaced by the catalog core.
//
// Validation and not-found failures are detected before any mutation.
// Constraint and storage failures raised inside a write abort the enclosing
// transaction. Publish failures never reach HTTP callers.
package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrNotFound = errors.New("record not found")

// NotFound wraps ErrNotFound with the resource name and key.
func NotFound(resource string, id any) error {
	return fmt.Errorf("%s %v: %w", resource, id, ErrNotFound)
}

// ValidationError aggregates per-field validation messages.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, messages := range other.Fields {
		e.Fields[field] = append(e.Fields[field], messages...)
	}
}

func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// OrNil returns nil when no field failed, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ConstraintViolationError reports an integrity failure raised while
// persisting associations or rows.
type ConstraintViolationError struct {
	Table  string
	Detail string
	Err    error
}

func (e *ConstraintViolationError) Error() string {
	msg := fmt.Sprintf("constraint violation on %s: %s", e.Table, e.Detail)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConstraintViolationError) Unwrap() error {
	return e.Err
}

// StorageError reports a failed upload or delete against the blob backend.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// PublishError carries the identifiers of a model event that could not be
// delivered to the message bus.
type PublishError struct {
	Table  string
	ID     string
	Action string
	Err    error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to publish event to message bus. table: %s id: %s action: %s: %v", e.Table, e.ID, e.Action, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsConstraintViolation(err error) bool {
	var target *ConstraintViolationError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}
