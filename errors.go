package hnswgraph

import (
	"fmt"

	"github.com/xDarkicex/hnswgraph/internal/graph"
)

// Sentinel errors for the boundary conditions this module's operations can
// hit, grounded on the teacher's libravdb/errors.go wrap-with-context
// idiom but trimmed to the handful of classes spec.md §7 actually names:
// no severity, retry count, or stack-trace capture, since nothing in this
// module's error paths needs to decide a recovery action on its own.
// ErrDuplicateID, ErrNotFound, and ErrRemoveDisabled are the same sentinel
// values internal/graph returns, re-exported so callers never need an
// errors.Is against an internal package.
var (
	ErrDimensionMismatch = fmt.Errorf("hnswgraph: vector dimension mismatch")
	ErrSizeLimitExceeded = fmt.Errorf("hnswgraph: size limit exceeded")
	ErrIndexCorrupted    = graph.ErrCorrupted
	ErrDuplicateID       = graph.ErrDuplicateID
	ErrNotFound          = graph.ErrNotFound
	ErrRemoveDisabled    = graph.ErrRemoveDisabled
	ErrStaleVersion      = graph.ErrStaleVersion
)

// UncategorizedError wraps a failure from an AddAll worker goroutine that
// doesn't fit one of the sentinel classes above — grounded on
// libravdb/errors.go's VectorDBError.WithCause pattern, kept as a plain
// struct since this module's taxonomy doesn't need severities or retries.
type UncategorizedError struct {
	ID    any
	Cause error
}

func (e *UncategorizedError) Error() string {
	return fmt.Sprintf("hnswgraph: uncategorized failure for id %v: %v", e.ID, e.Cause)
}

func (e *UncategorizedError) Unwrap() error { return e.Cause }
