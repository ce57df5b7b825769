package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrInvalidIndex     = errors.New("invalid node index")
	ErrInvalidStartNode = fmt.Errorf("invalid start node: %w", ErrInvalidIndex)
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op        string // Operation that failed (e.g., "AddEdge", "BFS")
	Entity    string // "node" or "edge"
	Index     int    // Offending index
	NodeCount int    // Node count at the time of the failure
	Cause     error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("%s %s %d (node count %d): %v", e.Op, e.Entity, e.Index, e.NodeCount, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// IndexError builds a GraphError for an index outside [0, nodeCount).
func IndexError(op string, index, nodeCount int, cause error) error {
	return &GraphError{
		Op:        op,
		Entity:    "node",
		Index:     index,
		NodeCount: nodeCount,
		Cause:     cause,
	}
}

// IsInvalidIndex reports whether err was caused by an out-of-range index.
func IsInvalidIndex(err error) bool {
	return errors.Is(err, ErrInvalidIndex)
}
