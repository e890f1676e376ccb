package scenario

import (
	"github.com/pkg/errors"

	"github.com/born-ml/einstein/internal/expr"
	"github.com/born-ml/einstein/internal/index"
	"github.com/born-ml/einstein/internal/tensor"
)

// Sentinel errors for scenario files.
var (
	// ErrSyntax is returned for a statement that cannot be parsed.
	ErrSyntax = errors.New("scenario: syntax error")

	// ErrUnknownName is returned when a statement names an undeclared tensor
	// or an unregistered function.
	ErrUnknownName = errors.New("scenario: unknown name")

	// ErrBadDeclaration is returned for an invalid tensor declaration.
	ErrBadDeclaration = errors.New("scenario: bad tensor declaration")

	// ErrExpectation is returned when a tensor does not hold the expected
	// values, or a statement does not fail the way it was expected to.
	ErrExpectation = errors.New("scenario: expectation failed")
)

// errorNames maps the names usable in a statement's "error" field to the
// sentinels they stand for.
var errorNames = map[string]error{
	"AbsentSymbol":                   index.ErrAbsentSymbol,
	"RankMismatch":                   index.ErrRankMismatch,
	"CoordOutOfRange":                index.ErrCoordOutOfRange,
	"MismatchedRepeatedIndex":        index.ErrMismatchedRepeatedIndex,
	"MismatchedCommonIndex":          index.ErrMismatchedCommonIndex,
	"MismatchedFreeIndex":            index.ErrMismatchedFreeIndex,
	"UnresolvedContraction":          index.ErrUnresolvedContraction,
	"IndeterminateContractionExtent": index.ErrIndeterminateContractionExtent,
	"RepeatedTargetIndex":            index.ErrRepeatedTargetIndex,
	"DeferredTarget":                 index.ErrDeferredTarget,
	"IncompatibleElementType":        tensor.ErrIncompatibleElementType,
	"NotAssignable":                  expr.ErrNotAssignable,
	"Arity":                          expr.ErrArity,
	"Syntax":                         ErrSyntax,
	"UnknownName":                    ErrUnknownName,
}
