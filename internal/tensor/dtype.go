// Package tensor provides dense storage and element types for the einstein
// expression engine.
package tensor

import (
	"strings"

	"github.com/pkg/errors"
)

// DType is a constraint for supported element types.
// It uses Go generics to ensure compile-time type safety.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool
}

// DataType represents runtime type information for tensors and expression results.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
)

// ErrIncompatibleElementType is returned when an operator or function is
// applied to element types that lack the capability it needs.
var ErrIncompatibleElementType = errors.New("tensor: incompatible element type")

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8, Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// ParseDataType returns the data type named s ("float64", "int32", ...).
func ParseDataType(s string) (DataType, error) {
	for dt := Float32; dt <= Bool; dt++ {
		if strings.EqualFold(dt.String(), s) {
			return dt, nil
		}
	}
	return 0, errors.Errorf("tensor: unknown data type %q", s)
}

// IsFloat reports whether dt is a floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// IsInteger reports whether dt is an integer type.
func (dt DataType) IsInteger() bool {
	return dt == Int32 || dt == Int64 || dt == Uint8
}

// IsNumeric reports whether values of dt can be added and multiplied.
func (dt DataType) IsNumeric() bool {
	return dt.IsFloat() || dt.IsInteger()
}

// rank orders numeric types for promotion: a binary operation yields the
// higher-ranked operand type.
func (dt DataType) rank() int {
	switch dt {
	case Uint8:
		return 1
	case Int32:
		return 2
	case Int64:
		return 3
	case Float32:
		return 4
	case Float64:
		return 5
	default:
		return 0
	}
}

// Promote returns the common type of a sum, difference or product of a and b.
// Mixing an integer with float32 yields float32, except int64 which yields
// float64 so that no integer precision is dropped silently.
func Promote(a, b DataType) (DataType, error) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return 0, errors.Wrapf(ErrIncompatibleElementType, "%s and %s are not addable", a, b)
	}
	if (a == Int64 && b == Float32) || (a == Float32 && b == Int64) {
		return Float64, nil
	}
	if a.rank() >= b.rank() {
		return a, nil
	}
	return b, nil
}

// Quotient returns the type of a / b. Dividing two integers yields float64,
// which keeps implicit sums of quotients from truncating.
func Quotient(a, b DataType) (DataType, error) {
	dt, err := Promote(a, b)
	if err != nil {
		return 0, err
	}
	if dt.IsInteger() {
		return Float64, nil
	}
	return dt, nil
}

// Negate returns the type of -a. Booleans and unsigned integers cannot be
// negated.
func Negate(a DataType) (DataType, error) {
	if !a.IsNumeric() || a == Uint8 {
		return 0, errors.Wrapf(ErrIncompatibleElementType, "%s is not negatable", a)
	}
	return a, nil
}

// AssignableTo reports whether a value of type from may be stored in an
// element of type to without losing its kind: booleans only into booleans,
// floats only into floats, integers into floats or into integers at least as
// wide.
func AssignableTo(from, to DataType) error {
	ok := false
	switch {
	case from == Bool:
		ok = to == Bool
	case from.IsFloat():
		ok = to.IsFloat()
	case from.IsInteger():
		ok = to.IsFloat() || (to.IsInteger() && to.rank() >= from.rank())
	}
	if !ok {
		return errors.Wrapf(ErrIncompatibleElementType, "cannot store %s into %s", from, to)
	}
	return nil
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("unsupported type")
	}
}

// DataTypeOf returns the runtime data type of T.
func DataTypeOf[T DType]() DataType {
	var dummy T
	return inferDataType(dummy)
}
