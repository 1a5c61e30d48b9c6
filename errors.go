package reduct

import "errors"

var (
	// ErrIndexOutOfRange indicates an index outside [0, Len), or outside
	// [0, Len] for insertion.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrOwnershipViolation indicates an edit through a transient context
	// that has already been committed or discarded.
	ErrOwnershipViolation = errors.New("transient context already committed or discarded")
)
