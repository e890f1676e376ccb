package tensor

import (
	"math/rand"

	"github.com/born-ml/einstein/internal/loop"
)

// Zeros creates a tensor filled with zeros.
// Panics if the shape is invalid.
//
// Example:
//
//	t := tensor.Zeros[float32](Shape{3, 4})
func Zeros[T DType](shape Shape) *Dense[T] {
	d, err := NewDense[T](shape)
	if err != nil {
		panic(err)
	}
	return d
}

// Ones creates a tensor filled with ones (true for bool).
//
// Example:
//
//	t := tensor.Ones[float64](Shape{2, 3})
func Ones[T DType](shape Shape) *Dense[T] {
	return Full(shape, As[T](number(Int64, 1)))
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](Shape{3, 3}, 3.14)
func Full[T DType](shape Shape, value T) *Dense[T] {
	d := Zeros[T](shape)
	d.Fill(value)
	return d
}

// Eye creates a 2D identity matrix.
//
// Example:
//
//	t := tensor.Eye[float32](3) // 3x3 identity matrix
func Eye[T DType](n int) *Dense[T] {
	d := Zeros[T](Shape{n, n})
	one := As[T](number(Int64, 1))
	for i := 0; i < n; i++ {
		d.Set(one, i, i)
	}
	return d
}

// RandomInts fills d with integers drawn uniformly from [lo, hi], converted
// to T. Integer-valued data keeps sums and products exact in tests.
//
// Note: Uses math/rand (not crypto/rand); the values only feed numeric checks.
func RandomInts[T DType](d *Dense[T], rng *rand.Rand, lo, hi int) {
	loop.Shape(d.shape, func(coords []int) {
		v := lo + rng.Intn(hi-lo+1) //nolint:gosec // G404: reproducible test data
		d.Set(As[T](number(Int64, v)), coords...)
	})
}
