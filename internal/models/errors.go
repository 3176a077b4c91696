package models

import (
	"errors"
	"fmt"
)

// ValidationKind classifies why a field failed validation
type ValidationKind string

const (
	MissingField  ValidationKind = "missing_field"
	InvalidEnum   ValidationKind = "invalid_enum"
	InvalidFormat ValidationKind = "invalid_format"
	InvalidBody   ValidationKind = "invalid_body"
)

// ValidationError represents a validation error for a specific field
type ValidationError struct {
	Field   string         `json:"field"`
	Kind    ValidationKind `json:"kind"`
	Message string         `json:"message"`
	Value   interface{}    `json:"value,omitempty"`
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return ve.Message
}

// NewValidationError creates a validation error of the given kind
func NewValidationError(kind ValidationKind, field, message string) *ValidationError {
	return &ValidationError{Field: field, Kind: kind, Message: message}
}

// NotFoundError is returned when a route or an entity does not exist
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
	}
	return e.Resource + " not found"
}

// DependencyError wraps a fault raised by a collaborator (state store, object storage, publisher)
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// NewDependencyError wraps err, returning nil when err is nil
func NewDependencyError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DependencyError{Op: op, Err: err}
}

// IsValidationError reports whether err is, or wraps, a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFoundError reports whether err is, or wraps, a NotFoundError
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsDependencyError reports whether err is, or wraps, a DependencyError
func IsDependencyError(err error) bool {
	var de *DependencyError
	return errors.As(err, &de)
}
