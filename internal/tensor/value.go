package tensor

import (
	"strconv"

	"golang.org/x/exp/constraints"
)

// Value is a single element flowing through an expression, tagged with its
// runtime data type. Integer and boolean values are held in an int64, floating
// values in a float64; both are normalized to the width of the data type.
//
// Values are comparable with ==.
type Value struct {
	dtype DataType
	f     float64
	i     int64
}

// number builds a value of type dt from any Go number, applying the
// conversion rules of the Go language for the target width.
func number[N constraints.Integer | constraints.Float](dt DataType, n N) Value {
	switch dt {
	case Float32:
		return Value{dtype: dt, f: float64(float32(n))}
	case Float64:
		return Value{dtype: dt, f: float64(n)}
	case Int32:
		return Value{dtype: dt, i: int64(int32(n))}
	case Int64:
		return Value{dtype: dt, i: int64(n)}
	case Uint8:
		return Value{dtype: dt, i: int64(uint8(n))}
	case Bool:
		if n != 0 {
			return Value{dtype: dt, i: 1}
		}
		return Value{dtype: dt}
	default:
		panic("unknown data type")
	}
}

// ValueOf wraps a Go value.
func ValueOf[T DType](v T) Value {
	switch x := any(v).(type) {
	case float32:
		return number(Float32, x)
	case float64:
		return number(Float64, x)
	case int32:
		return number(Int32, x)
	case int64:
		return number(Int64, x)
	case uint8:
		return number(Uint8, x)
	case bool:
		if x {
			return number(Bool, 1)
		}
		return number(Bool, 0)
	default:
		panic("unsupported type")
	}
}

// As converts a value to the Go type T using Go conversion rules.
func As[T DType](v Value) T {
	var out T
	switch p := any(&out).(type) {
	case *float32:
		*p = float32(v.Float64())
	case *float64:
		*p = v.Float64()
	case *int32:
		*p = int32(v.Int64())
	case *int64:
		*p = v.Int64()
	case *uint8:
		*p = uint8(v.Int64())
	case *bool:
		*p = v.Bool()
	}
	return out
}

// Zero returns the additive identity of dt, the seed of every implicit sum.
func Zero(dt DataType) Value {
	return number(dt, 0)
}

// DType returns the data type of the value.
func (v Value) DType() DataType {
	return v.dtype
}

// Float64 returns the value as a float64.
func (v Value) Float64() float64 {
	if v.dtype.IsFloat() {
		return v.f
	}
	return float64(v.i)
}

// Int64 returns the value as an int64, truncating floats toward zero.
func (v Value) Int64() int64 {
	if v.dtype.IsFloat() {
		return int64(v.f)
	}
	return v.i
}

// Bool reports whether the value is non-zero.
func (v Value) Bool() bool {
	if v.dtype.IsFloat() {
		return v.f != 0
	}
	return v.i != 0
}

// Convert returns the value converted to dt.
func (v Value) Convert(dt DataType) Value {
	if v.dtype == dt {
		return v
	}
	if v.dtype.IsFloat() {
		return number(dt, v.f)
	}
	return number(dt, v.i)
}

// String formats the value the way strconv does for its Go type.
func (v Value) String() string {
	switch v.dtype {
	case Float32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case Float64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(v.i != 0)
	default:
		return strconv.FormatInt(v.i, 10)
	}
}

// Add returns a+b computed in dt.
func Add(a, b Value, dt DataType) Value {
	a, b = a.Convert(dt), b.Convert(dt)
	if dt.IsFloat() {
		return number(dt, a.f+b.f)
	}
	return number(dt, a.i+b.i)
}

// Sub returns a-b computed in dt.
func Sub(a, b Value, dt DataType) Value {
	a, b = a.Convert(dt), b.Convert(dt)
	if dt.IsFloat() {
		return number(dt, a.f-b.f)
	}
	return number(dt, a.i-b.i)
}

// Mul returns a*b computed in dt.
func Mul(a, b Value, dt DataType) Value {
	a, b = a.Convert(dt), b.Convert(dt)
	if dt.IsFloat() {
		return number(dt, a.f*b.f)
	}
	return number(dt, a.i*b.i)
}

// Div returns a/b computed in dt. Integer division by zero panics, as in Go;
// Quotient never selects an integer type for expression nodes.
func Div(a, b Value, dt DataType) Value {
	a, b = a.Convert(dt), b.Convert(dt)
	if dt.IsFloat() {
		return number(dt, a.f/b.f)
	}
	return number(dt, a.i/b.i)
}

// Neg returns -a.
func Neg(a Value) Value {
	if a.dtype.IsFloat() {
		return number(a.dtype, -a.f)
	}
	return number(a.dtype, -a.i)
}
