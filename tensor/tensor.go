// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"io"
	"math/rand"

	"github.com/born-ml/einstein/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types.
// Supported types: float32, float64, int32, int64, uint8, bool.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Dense is a generic row-major tensor.
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.Shape{2, 3})
//	x.Set(1.5, 0, 2)
//	v := x.At(0, 2)  // 1.5
type Dense[T DType] = tensor.Dense[T]

// Value is a single element of any supported data type.
type Value = tensor.Value

// Errors
var (
	// ErrBadShape is returned for shapes with a non-positive dimension or a
	// data length that does not match.
	ErrBadShape = tensor.ErrBadShape

	// ErrIncompatibleElementType is returned when element types cannot be
	// combined or stored.
	ErrIncompatibleElementType = tensor.ErrIncompatibleElementType
)

// Creation functions

// New creates a zero-filled tensor, or returns ErrBadShape.
func New[T DType](shape Shape) (*Dense[T], error) {
	return tensor.NewDense[T](shape)
}

// Zeros creates a tensor filled with zeros. It panics on an invalid shape.
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.Shape{2, 3})
func Zeros[T DType](shape Shape) *Dense[T] {
	return tensor.Zeros[T](shape)
}

// Ones creates a tensor filled with ones.
//
// Example:
//
//	x := tensor.Ones[int64](tensor.Shape{2, 3})
func Ones[T DType](shape Shape) *Dense[T] {
	return tensor.Ones[T](shape)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	x := tensor.Full[float32](tensor.Shape{2, 3}, 3.14)
func Full[T DType](shape Shape, value T) *Dense[T] {
	return tensor.Full(shape, value)
}

// Eye creates a 2D identity matrix.
//
// Example:
//
//	identity := tensor.Eye[float32](3)  // 3x3 identity matrix
func Eye[T DType](n int) *Dense[T] {
	return tensor.Eye[T](n)
}

// FromSlice creates a tensor from a Go slice in row-major order.
//
// Example:
//
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3})
func FromSlice[T DType](data []T, shape Shape) (*Dense[T], error) {
	return tensor.FromSlice(data, shape)
}

// RandomInts fills d with integers drawn uniformly from [lo, hi].
//
// Example:
//
//	x := tensor.Zeros[int64](tensor.Shape{3, 3})
//	tensor.RandomInts(x, rand.New(rand.NewSource(1)), -9, 9)
func RandomInts[T DType](d *Dense[T], rng *rand.Rand, lo, hi int) {
	tensor.RandomInts(d, rng, lo, hi)
}

// Values

// ValueOf wraps a Go value.
func ValueOf[T DType](v T) Value {
	return tensor.ValueOf(v)
}

// As converts a Value to T.
func As[T DType](v Value) T {
	return tensor.As[T](v)
}

// Data type rules

// ParseDataType parses a data type name such as "float64".
func ParseDataType(s string) (DataType, error) {
	return tensor.ParseDataType(s)
}

// DataTypeOf returns the DataType of T.
func DataTypeOf[T DType]() DataType {
	return tensor.DataTypeOf[T]()
}

// Promote returns the result type of +, - and * on a and b.
func Promote(a, b DataType) (DataType, error) {
	return tensor.Promote(a, b)
}

// Quotient returns the result type of a / b.
func Quotient(a, b DataType) (DataType, error) {
	return tensor.Quotient(a, b)
}

// AssignableTo reports whether values of from may be stored into a tensor of to.
func AssignableTo(from, to DataType) error {
	return tensor.AssignableTo(from, to)
}

// Output

// Format writes d to w as nested brackets, innermost dimension last.
//
// Example:
//
//	tensor.Format(os.Stdout, x)  // [[3 4] [6 8]]
func Format[T DType](w io.Writer, d *Dense[T]) error {
	return tensor.Format(w, d)
}

// Sprint returns the bracketed text form of d.
func Sprint[T DType](d *Dense[T]) string {
	return tensor.Sprint(d)
}
