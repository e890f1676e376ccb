// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package indicial

import (
	"github.com/born-ml/einstein/internal/expr"
	"github.com/born-ml/einstein/internal/functions"
	"github.com/born-ml/einstein/internal/index"
	"github.com/born-ml/einstein/internal/special"
	"github.com/born-ml/einstein/internal/tensor"
)

// Type aliases for public API

// Symbol names one tensor dimension in an expression, e.g. 'i' in A(i,j).
type Symbol = index.Symbol

// Coord fixes one dimension of a subscripted tensor to a position.
type Coord = index.Coord

// Subscript is a Symbol or a Coord.
type Subscript = index.Subscript

// Extent is the size of one dimension, Fixed or Deferred.
type Extent = index.Extent

// Map is the index map of an expression: one entry per symbol occurrence.
type Map = index.Map

// Node is an expression tree node.
type Node = expr.Node

// Source is anything that can be subscripted.
type Source = expr.Source

// Sink is a Source that can be assigned into.
type Sink = expr.Sink

// Tensor is a subscripted tensor: the leaf of an expression and the target
// of an assignment.
type Tensor = expr.Tensor

// Func describes a function applicable element-wise with Apply.
type Func = expr.Func

// Op is a binary operator.
type Op = expr.Op

// Binary operators.
const (
	OpAdd Op = expr.OpAdd
	OpSub Op = expr.OpSub
	OpMul Op = expr.OpMul
	OpDiv Op = expr.OpDiv
)

// Common index symbols.
const (
	I Symbol = 'i'
	J Symbol = 'j'
	K Symbol = 'k'
	L Symbol = 'l'
	M Symbol = 'm'
	N Symbol = 'n'
)

// Deferred marks a dimension whose size is inferred from context.
var Deferred = index.Deferred

// Errors
var (
	ErrAbsentSymbol                   = index.ErrAbsentSymbol
	ErrRankMismatch                   = index.ErrRankMismatch
	ErrCoordOutOfRange                = index.ErrCoordOutOfRange
	ErrMismatchedRepeatedIndex        = index.ErrMismatchedRepeatedIndex
	ErrMismatchedCommonIndex          = index.ErrMismatchedCommonIndex
	ErrMismatchedFreeIndex            = index.ErrMismatchedFreeIndex
	ErrUnresolvedContraction          = index.ErrUnresolvedContraction
	ErrIndeterminateContractionExtent = index.ErrIndeterminateContractionExtent
	ErrRepeatedTargetIndex            = index.ErrRepeatedTargetIndex
	ErrDeferredTarget                 = index.ErrDeferredTarget
	ErrIncompatibleElementType        = tensor.ErrIncompatibleElementType
	ErrNotAssignable                  = expr.ErrNotAssignable
	ErrArity                          = expr.ErrArity
	ErrNilNode                        = expr.ErrNilNode
	ErrBadEinsum                      = expr.ErrBadEinsum
)

// Symbols converts a string such as "ijk" into its symbols.
func Symbols(s string) []Symbol {
	return index.Symbols(s)
}

// Fixed returns an extent of n.
func Fixed(n int) Extent {
	return index.Fixed(n)
}

// Leaves

// Dense wraps d so that it can be subscripted and assigned into.
func Dense[T tensor.DType](d *tensor.Dense[T]) Sink {
	return expr.Dense(d)
}

// Of subscripts src, one subscript per dimension.
//
// Example:
//
//	a, err := indicial.Of(indicial.Dense(A), indicial.I, indicial.Coord(0))  // A(i,0)
func Of(src Source, subs ...Subscript) (*Tensor, error) {
	return expr.Of(src, subs...)
}

// OfDense subscripts dense storage.
func OfDense[T tensor.DType](d *tensor.Dense[T], subs ...Subscript) (*Tensor, error) {
	return expr.Of(expr.Dense(d), subs...)
}

// Index returns a node whose value is the current coordinate of s.
func Index(s Symbol) (Node, error) {
	x, err := expr.Index(s)
	if err != nil {
		return nil, err
	}
	return x, nil
}

// Const returns a scalar node holding v.
func Const[T tensor.DType](v T) Node {
	return expr.Const(v)
}

// Composition

// Add returns a + b (+ more...).
func Add(a, b Node, more ...Node) (Node, error) {
	return expr.Add(a, b, more...)
}

// Sub returns a - b.
func Sub(a, b Node) (Node, error) {
	return expr.Sub(a, b)
}

// Mul returns a * b (* more...), contracting repeated symbols.
func Mul(a, b Node, more ...Node) (Node, error) {
	return expr.Mul(a, b, more...)
}

// Div returns a / b, contracting repeated symbols.
func Div(a, b Node) (Node, error) {
	return expr.Div(a, b)
}

// Neg returns -a.
func Neg(a Node) (Node, error) {
	return expr.Neg(a)
}

// Apply applies f element-wise to args.
func Apply(f Func, args ...Node) (Node, error) {
	return expr.Apply(f, args...)
}

// Evaluation

// Assign evaluates rhs into target.
func Assign(target *Tensor, rhs Node) error {
	return expr.Assign(target, rhs)
}

// Fill stores v at every coordinate of target.
func Fill[T tensor.DType](target *Tensor, v T) error {
	return expr.Fill(target, tensor.ValueOf(v))
}

// Reduce evaluates a fully contracted expression to a single value.
func Reduce(n Node) (tensor.Value, error) {
	return expr.Reduce(n)
}

// Einsum evaluates a NumPy-style subscript string such as "ik,kj->ij" into
// out.
//
// Example:
//
//	err := indicial.Einsum("ik,kj->ij", indicial.Dense(C), indicial.Dense(A), indicial.Dense(B))
func Einsum(subscripts string, out Sink, operands ...Source) error {
	return expr.Einsum(subscripts, out, operands...)
}

// Constant tensors

// Delta returns the Kronecker delta of rank.
func Delta[T tensor.DType](rank int) Source {
	return special.Delta[T](rank)
}

// LeviCivita returns the Levi-Civita symbol of rank.
func LeviCivita[T tensor.DType](rank int) Source {
	return special.LeviCivita[T](rank)
}

// Functions

// Function returns the function registered under name, such as "sqrt" or
// "comp_ellint_1".
func Function(name string) (Func, bool) {
	return functions.Lookup(name)
}

// FunctionNames returns the registered function names in sorted order.
func FunctionNames() []string {
	return functions.Names()
}
