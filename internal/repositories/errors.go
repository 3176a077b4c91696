package repositories

import (
	"errors"
	"fmt"
)

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrInvalidID is returned when an empty or malformed id is provided
	ErrInvalidID = errors.New("invalid ID")

	// ErrConnection is returned when the backing store cannot be reached
	ErrConnection = errors.New("store connection error")
)

// RepositoryError represents a repository-specific error with additional context
type RepositoryError struct {
	Op     string // Operation that failed
	Entity string // Table name
	ID     string // Record ID (if applicable)
	Err    error  // Underlying error
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s operation failed for ID %s: %v", e.Entity, e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s operation failed: %v", e.Entity, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new repository error
func NewRepositoryError(op, entity, id string, err error) *RepositoryError {
	return &RepositoryError{
		Op:     op,
		Entity: entity,
		ID:     id,
		Err:    err,
	}
}

// IsNotFound returns true if the error indicates a record was not found
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
