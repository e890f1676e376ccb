package tensor

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DType Tests

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Float32, 4},
		{Float64, 8},
		{Int32, 4},
		{Int64, 8},
		{Uint8, 1},
		{Bool, 1},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

func TestParseDataType(t *testing.T) {
	for dt := Float32; dt <= Bool; dt++ {
		got, err := ParseDataType(dt.String())
		require.NoError(t, err)
		assert.Equal(t, dt, got)
	}
	got, err := ParseDataType("Float64")
	require.NoError(t, err)
	assert.Equal(t, Float64, got)

	_, err = ParseDataType("complex128")
	assert.Error(t, err)
}

func TestPromote(t *testing.T) {
	tests := []struct {
		a, b DataType
		want DataType
	}{
		{Int32, Int32, Int32},
		{Uint8, Int32, Int32},
		{Int32, Int64, Int64},
		{Int32, Float32, Float32},
		{Int64, Float32, Float64},
		{Float32, Int64, Float64},
		{Float32, Float64, Float64},
		{Uint8, Uint8, Uint8},
	}

	for _, tt := range tests {
		got, err := Promote(tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Promote(%s, %s)", tt.a, tt.b)
	}

	_, err := Promote(Bool, Float64)
	assert.True(t, errors.Is(err, ErrIncompatibleElementType))
}

func TestQuotient(t *testing.T) {
	got, err := Quotient(Int32, Int32)
	require.NoError(t, err)
	assert.Equal(t, Float64, got)

	got, err = Quotient(Float32, Int32)
	require.NoError(t, err)
	assert.Equal(t, Float32, got)

	_, err = Quotient(Bool, Bool)
	assert.True(t, errors.Is(err, ErrIncompatibleElementType))
}

func TestNegate(t *testing.T) {
	for _, dt := range []DataType{Float32, Float64, Int32, Int64} {
		got, err := Negate(dt)
		require.NoError(t, err)
		assert.Equal(t, dt, got)
	}
	for _, dt := range []DataType{Uint8, Bool} {
		_, err := Negate(dt)
		assert.True(t, errors.Is(err, ErrIncompatibleElementType), dt.String())
	}
}

func TestAssignableTo(t *testing.T) {
	assert.NoError(t, AssignableTo(Int32, Float64))
	assert.NoError(t, AssignableTo(Float64, Float32))
	assert.NoError(t, AssignableTo(Bool, Bool))
	assert.NoError(t, AssignableTo(Uint8, Int64))

	assert.True(t, errors.Is(AssignableTo(Float64, Int32), ErrIncompatibleElementType))
	assert.True(t, errors.Is(AssignableTo(Bool, Float32), ErrIncompatibleElementType))
	assert.True(t, errors.Is(AssignableTo(Int32, Bool), ErrIncompatibleElementType))

	// Integers only widen.
	assert.NoError(t, AssignableTo(Int32, Int32))
	assert.NoError(t, AssignableTo(Uint8, Int32))
	assert.NoError(t, AssignableTo(Int64, Float32))
	assert.True(t, errors.Is(AssignableTo(Int64, Int32), ErrIncompatibleElementType))
	assert.True(t, errors.Is(AssignableTo(Int64, Uint8), ErrIncompatibleElementType))
	assert.True(t, errors.Is(AssignableTo(Int32, Uint8), ErrIncompatibleElementType))
}

// Value Tests

func TestValueArithmetic(t *testing.T) {
	a, b := ValueOf[int32](7), ValueOf[int32](2)
	assert.Equal(t, int32(9), As[int32](Add(a, b, Int32)))
	assert.Equal(t, int32(5), As[int32](Sub(a, b, Int32)))
	assert.Equal(t, int32(14), As[int32](Mul(a, b, Int32)))
	assert.Equal(t, int32(3), As[int32](Div(a, b, Int32)))
	assert.Equal(t, 3.5, As[float64](Div(a, b, Float64)))
	assert.Equal(t, int32(-7), As[int32](Neg(a)))
}

func TestValueWidth(t *testing.T) {
	// Results are normalized to the width of their type.
	v := Add(ValueOf[uint8](250), ValueOf[uint8](10), Uint8)
	assert.Equal(t, uint8(4), As[uint8](v))

	f := ValueOf[float32](0.1)
	assert.Equal(t, float64(float32(0.1)), f.Float64())
	assert.Equal(t, Float32, f.DType())
}

func TestValueConvert(t *testing.T) {
	v := ValueOf[float64](2.75)
	assert.Equal(t, int64(2), v.Convert(Int64).Int64())
	assert.Equal(t, Bool, v.Convert(Bool).DType())
	assert.True(t, v.Convert(Bool).Bool())
	assert.Equal(t, ValueOf[int32](3), ValueOf[int64](3).Convert(Int32))
	assert.Equal(t, Zero(Float32), ValueOf[float32](0))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "1.5", ValueOf(1.5).String())
	assert.Equal(t, "-3", ValueOf[int32](-3).String())
	assert.Equal(t, "true", ValueOf(true).String())
	assert.Equal(t, "0.1", ValueOf[float32](0.1).String())
}

// Dense Tests

func TestDenseAtSet(t *testing.T) {
	d := Zeros[float64](Shape{3, 4})
	assert.Equal(t, 2, d.Rank())
	assert.Equal(t, 4, d.Dim(1))
	assert.Equal(t, 12, d.NumElements())
	assert.Equal(t, Float64, d.DType())

	d.Set(1.5, 1, 2)
	assert.Equal(t, 1.5, d.At(1, 2))
	assert.Equal(t, 1.5, d.Data()[1*4+2])
	assert.Equal(t, ValueOf(1.5), d.Value([]int{1, 2}))

	d.SetValue([]int{2, 3}, ValueOf[int32](7))
	assert.Equal(t, 7.0, d.At(2, 3))

	assert.Panics(t, func() { d.At(3, 0) })
	assert.Panics(t, func() { d.At(0) })
}

func TestFromSlice(t *testing.T) {
	d, err := FromSlice([]int32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, int32(6), d.At(1, 2))
	assert.Equal(t, int32(2), d.At(0, 1))

	_, err = FromSlice([]int32{1, 2, 3}, Shape{2, 3})
	assert.True(t, errors.Is(err, ErrBadShape))

	_, err = NewDense[float32](Shape{2, 0})
	assert.True(t, errors.Is(err, ErrBadShape))
}

func TestCreation(t *testing.T) {
	ones := Ones[int64](Shape{2, 2})
	assert.Equal(t, []int64{1, 1, 1, 1}, ones.Data())

	full := Full[float32](Shape{3}, 2.5)
	assert.Equal(t, []float32{2.5, 2.5, 2.5}, full.Data())

	eye := Eye[float64](3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.Equal(t, want, eye.At(i, j))
		}
	}

	assert.Equal(t, []bool{true, true}, Ones[bool](Shape{2}).Data())
}

func TestClone(t *testing.T) {
	d := Full[int32](Shape{2}, 4)
	c := d.Clone()
	c.Set(9, 0)
	assert.Equal(t, int32(4), d.At(0))
	assert.Equal(t, int32(9), c.At(0))
}

func TestRandomInts(t *testing.T) {
	d := Zeros[float64](Shape{4, 5})
	RandomInts(d, rand.New(rand.NewSource(1)), -10, 10)
	for _, v := range d.Data() {
		assert.Equal(t, math.Trunc(v), v)
		assert.GreaterOrEqual(t, v, -10.0)
		assert.LessOrEqual(t, v, 10.0)
	}
}

func TestFormat(t *testing.T) {
	m, err := FromSlice([]float64{3, 4, 6, 8}, Shape{2, 2})
	require.NoError(t, err)
	assert.Equal(t, "[[3 4] [6 8]]", Sprint(m))

	v, err := FromSlice([]int32{1, 2, 3}, Shape{3})
	require.NoError(t, err)
	assert.Equal(t, "[1 2 3]", Sprint(v))

	c := Zeros[int64](Shape{2, 1, 2})
	assert.Equal(t, "[[[0 0]] [[0 0]]]", Sprint(c))

	s := Full[float64](Shape{}, 14)
	assert.Equal(t, "14", Sprint(s))

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, m))
	assert.Equal(t, "[[3 4] [6 8]]", buf.String())
}

func TestShape(t *testing.T) {
	s := Shape{2, 3, 4}
	assert.Equal(t, 24, s.NumElements())
	assert.Equal(t, []int{12, 4, 1}, s.strides())
	assert.NoError(t, s.Validate())
	assert.True(t, s.Equal(s.Clone()))
	assert.False(t, s.Equal(Shape{2, 3}))

	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, []int{}, Shape(nil).strides())
	assert.NotNil(t, Shape(nil).Clone())
	assert.True(t, errors.Is(Shape{2, 0}.Validate(), ErrBadShape))
}
