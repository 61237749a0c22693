package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrVertexNotFound  = errors.New("vertex not found")
	ErrDuplicateVertex = errors.New("vertex already exists")
	ErrNilCollection   = errors.New("collection is nil")
	ErrEmptyKey        = errors.New("metadata key is empty")
	ErrKeyMissing      = errors.New("metadata key missing")
	ErrWrongValueType  = errors.New("metadata value has wrong type")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op      string // Operation that failed (e.g., "AddEdge", "SortByMetadata")
	Entity  string // Entity type (e.g., "vertex", "edge", "metadata")
	ID      uint64 // Entity ID (if applicable)
	Key     string // Metadata key (for metadata operations)
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.ID != 0 {
		if e.Key != "" {
			return fmt.Sprintf("%s %s %d (key %s): %v", e.Op, e.Entity, e.ID, e.Key, e.Cause)
		}
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	if e.Key != "" {
		return fmt.Sprintf("%s %s (key %s): %v", e.Op, e.Entity, e.Key, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// VertexNotFoundError creates a vertex not found error.
func VertexNotFoundError(op string, vertexID uint64) error {
	return &GraphError{Op: op, Entity: "vertex", ID: vertexID, Cause: ErrVertexNotFound}
}

// MetadataError creates a metadata access error.
func MetadataError(op, key string, vertexID uint64, cause error) error {
	return &GraphError{Op: op, Entity: "metadata", ID: vertexID, Key: key, Cause: cause}
}

// IsInvalidArgument returns true if the error is an argument validation error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrNilCollection) ||
		errors.Is(err, ErrEmptyKey) ||
		errors.Is(err, ErrKeyMissing) ||
		errors.Is(err, ErrWrongValueType)
}
