package expr

import "github.com/pkg/errors"

// Sentinel errors for expression construction and assignment.
var (
	// ErrNotAssignable is returned when assigning into a tensor leaf whose
	// source cannot be written.
	ErrNotAssignable = errors.New("expr: target is not assignable")

	// ErrArity is returned when a function is applied to the wrong number of
	// arguments.
	ErrArity = errors.New("expr: wrong number of arguments")

	// ErrNilNode is returned when a nil node or source is composed.
	ErrNilNode = errors.New("expr: nil node")

	// ErrBadEinsum is returned for a malformed einsum subscript string.
	ErrBadEinsum = errors.New("expr: malformed einsum subscripts")
)
