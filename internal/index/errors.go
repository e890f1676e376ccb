package index

import "github.com/pkg/errors"

// Sentinel errors for index-algebra violations. All of them are reported when
// an expression is built, never while it is evaluated. Callers match them with
// errors.Is; the returned errors carry the offending symbols and extents.
var (
	// ErrAbsentSymbol is returned when a subscript uses the reserved Absent symbol.
	ErrAbsentSymbol = errors.New("index: absent symbol used as subscript")

	// ErrRankMismatch is returned when the number of subscripts differs from
	// the rank of the subscripted object.
	ErrRankMismatch = errors.New("index: subscript count does not match rank")

	// ErrCoordOutOfRange is returned when a fixed integer subscript lies
	// outside the extent of its dimension.
	ErrCoordOutOfRange = errors.New("index: coordinate out of range")

	// ErrMismatchedRepeatedIndex is returned when two occurrences of a symbol
	// inside one node disagree on a fixed extent, or are both deferred.
	ErrMismatchedRepeatedIndex = errors.New("index: mismatched extents for repeated index")

	// ErrMismatchedCommonIndex is returned when a symbol shared by two
	// multiplied operands (or by the two sides of an assignment) has
	// different fixed extents.
	ErrMismatchedCommonIndex = errors.New("index: mismatched extents for common index")

	// ErrMismatchedFreeIndex is returned when a free symbol of two added
	// operands has different fixed extents.
	ErrMismatchedFreeIndex = errors.New("index: mismatched extents for free index")

	// ErrUnresolvedContraction is returned when a symbol on the right-hand
	// side is neither on the left-hand side nor summed over.
	ErrUnresolvedContraction = errors.New("index: index is neither free nor contracted")

	// ErrIndeterminateContractionExtent is returned when a summed symbol has
	// no fixed extent anywhere it could be resolved from.
	ErrIndeterminateContractionExtent = errors.New("index: cannot infer extent for implicit summation")

	// ErrRepeatedTargetIndex is returned when an assignment target repeats a symbol.
	ErrRepeatedTargetIndex = errors.New("index: assignment target repeats an index")

	// ErrDeferredTarget is returned when an assignment target has a deferred extent.
	ErrDeferredTarget = errors.New("index: assignment target has a deferred extent")
)
