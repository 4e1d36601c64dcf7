package booking

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("appointment not found")
	ErrForbidden         = errors.New("actor may not perform this operation")
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict means the conditional write lost to a concurrent
	// modification. The caller should re-read and retry.
	ErrConflict = errors.New("appointment was modified concurrently")

	// ErrUnavailable is a store or network failure, not a logical
	// rejection. Retry with backoff.
	ErrUnavailable = errors.New("backing store unavailable")

	// ErrSortUnsupported is returned by a store that cannot serve the
	// requested filter+sort shape. The listing resolver recovers from it;
	// it never reaches callers.
	ErrSortUnsupported = errors.New("sorted query shape not supported by store")
)

// ValidationError rejects a malformed or temporally invalid proposal.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
