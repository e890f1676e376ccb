package tensor

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/einstein/internal/loop"
)

// Dense is a row-major, strided multi-dimensional array with elements of type T.
// It is the storage that expressions read from and assign into.
//
// Example:
//
//	a := tensor.Zeros[float64](Shape{3, 4})
//	a.Set(1.5, 0, 2)
//	v := a.At(0, 2) // 1.5
type Dense[T DType] struct {
	shape  Shape
	stride []int
	data   []T
}

// NewDense allocates a zero-filled tensor of the given shape.
func NewDense[T DType](shape Shape) (*Dense[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Dense[T]{
		shape:  shape.Clone(),
		stride: shape.strides(),
		data:   make([]T, shape.NumElements()),
	}, nil
}

// FromSlice creates a tensor from a Go slice in row-major order.
// The slice is copied into the tensor's memory.
func FromSlice[T DType](data []T, shape Shape) (*Dense[T], error) {
	if shape.NumElements() != len(data) {
		return nil, errors.Wrapf(ErrBadShape, "shape %v requires %d elements, but got %d",
			shape, shape.NumElements(), len(data))
	}
	d, err := NewDense[T](shape)
	if err != nil {
		return nil, err
	}
	copy(d.data, data)
	return d, nil
}

// Shape returns the tensor's shape.
func (d *Dense[T]) Shape() Shape {
	return d.shape
}

// Rank returns the number of dimensions.
func (d *Dense[T]) Rank() int {
	return len(d.shape)
}

// Dim returns the size of dimension n.
func (d *Dense[T]) Dim(n int) int {
	return d.shape[n]
}

// DType returns the tensor's data type.
func (d *Dense[T]) DType() DataType {
	return DataTypeOf[T]()
}

// NumElements returns the total number of elements.
func (d *Dense[T]) NumElements() int {
	return len(d.data)
}

// Data returns the underlying row-major slice.
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (d *Dense[T]) Data() []T {
	return d.data
}

// offset computes the flat position of indices.
// Panics if indices are out of bounds.
func (d *Dense[T]) offset(indices []int) int {
	if len(indices) != len(d.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(d.shape), len(indices)))
	}
	off := 0
	for i, idx := range indices {
		if idx < 0 || idx >= d.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, d.shape[i]))
		}
		off += idx * d.stride[i]
	}
	return off
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
//
// Example:
//
//	t := tensor.Zeros[float32](Shape{3, 4})
//	value := t.At(1, 2) // Row 1, column 2
func (d *Dense[T]) At(indices ...int) T {
	return d.data[d.offset(indices)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (d *Dense[T]) Set(value T, indices ...int) {
	d.data[d.offset(indices)] = value
}

// Value returns the element at coords as a Value.
func (d *Dense[T]) Value(coords []int) Value {
	return ValueOf(d.data[d.offset(coords)])
}

// SetValue converts v to T and stores it at coords.
func (d *Dense[T]) SetValue(coords []int, v Value) {
	d.data[d.offset(coords)] = As[T](v)
}

// Fill sets every element to value.
func (d *Dense[T]) Fill(value T) {
	loop.Shape(d.shape, func(coords []int) {
		d.Set(value, coords...)
	})
}

// Clone creates a deep copy of the tensor.
func (d *Dense[T]) Clone() *Dense[T] {
	return &Dense[T]{
		shape:  d.shape.Clone(),
		stride: append([]int(nil), d.stride...),
		data:   append([]T(nil), d.data...),
	}
}

// String returns a short description of the tensor.
func (d *Dense[T]) String() string {
	return fmt.Sprintf("Dense[%s]%v", d.DType(), d.shape)
}
