package tensor

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// ErrBadShape is returned when a shape has a non-positive dimension or does
// not match the data it describes.
var ErrBadShape = errors.New("tensor: invalid shape")

// Shape lists the size of every storage dimension. The empty shape is a
// scalar holding one element.
type Shape []int

// NumElements returns the product of the dimensions.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate rejects dimensions below one. Index extents are Fixed sizes of at
// least one, so a zero-sized dimension is never a loop bound.
func (s Shape) Validate() error {
	for n, dim := range s {
		if dim < 1 {
			return errors.Wrapf(ErrBadShape, "dimension %d of %v is %d", n, s, dim)
		}
	}
	return nil
}

// Equal reports whether s and other have the same dimensions.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns a copy of s that is never nil.
func (s Shape) Clone() Shape {
	return append(Shape{}, s...)
}

// strides returns the row-major step of each dimension: the last dimension
// is contiguous.
func (s Shape) strides() []int {
	out := make([]int, len(s))
	step := 1
	for n := len(s) - 1; n >= 0; n-- {
		out[n] = step
		step *= s[n]
	}
	return out
}
