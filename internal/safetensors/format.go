// Package safetensors reads and writes dense tensors in the SafeTensors
// format:
//
//	[8 bytes: header_size (uint64 LE)]
//	[header_size bytes: JSON header]
//	[tensor data: raw little-endian bytes]
//
// The JSON header maps each tensor name to its dtype, shape and byte range
// within the data section, plus an optional "__metadata__" string map.
package safetensors

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/einstein/internal/tensor"
)

// Entry is one stored tensor: element type, shape and raw little-endian data.
type Entry struct {
	DType tensor.DataType
	Shape tensor.Shape
	Data  []byte
}

// File is the content of a SafeTensors file.
type File struct {
	Metadata map[string]string
	Tensors  map[string]Entry
}

// Lookup returns the tensor stored under name.
func (f *File) Lookup(name string) (Entry, error) {
	e, ok := f.Tensors[name]
	if !ok {
		return Entry{}, errors.Wrapf(ErrNotFound, "%q", name)
	}
	return e, nil
}

// dtypeNames maps element types to their SafeTensors dtype strings.
var dtypeNames = map[tensor.DataType]string{
	tensor.Float32: "F32",
	tensor.Float64: "F64",
	tensor.Int32:   "I32",
	tensor.Int64:   "I64",
	tensor.Uint8:   "U8",
	tensor.Bool:    "BOOL",
}

func parseDType(s string) (tensor.DataType, error) {
	for dt, name := range dtypeNames {
		if name == s {
			return dt, nil
		}
	}
	return 0, errors.Wrapf(ErrUnsupportedDType, "%q", s)
}

// Encode converts d to an Entry.
func Encode[T tensor.DType](d *tensor.Dense[T]) Entry {
	dt := d.DType()
	size := dt.Size()
	buf := make([]byte, d.NumElements()*size)
	for n, x := range d.Data() {
		putValue(buf[n*size:], tensor.ValueOf(x))
	}
	return Entry{DType: dt, Shape: d.Shape().Clone(), Data: buf}
}

// Decode converts e to a tensor of T. The stored element type must be
// assignable to T: integers widen into floats, floats never narrow into
// integers.
func Decode[T tensor.DType](e Entry) (*tensor.Dense[T], error) {
	if err := tensor.AssignableTo(e.DType, tensor.DataTypeOf[T]()); err != nil {
		return nil, err
	}
	d, err := tensor.NewDense[T](e.Shape)
	if err != nil {
		return nil, err
	}
	size := e.DType.Size()
	if len(e.Data) != d.NumElements()*size {
		return nil, errors.Wrapf(ErrInvalidFile, "shape %v needs %d bytes of %s, got %d",
			e.Shape, d.NumElements()*size, e.DType, len(e.Data))
	}
	data := d.Data()
	for n := range data {
		data[n] = tensor.As[T](getValue(e.Data[n*size:], e.DType))
	}
	return d, nil
}

func putValue(b []byte, v tensor.Value) {
	switch v.DType() {
	case tensor.Float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v.Float64())))
	case tensor.Float64:
		binary.LittleEndian.PutUint64(b, math.Float64bits(v.Float64()))
	case tensor.Int32:
		binary.LittleEndian.PutUint32(b, uint32(int32(v.Int64()))) //nolint:gosec // G115: two's complement bits
	case tensor.Int64:
		binary.LittleEndian.PutUint64(b, uint64(v.Int64())) //nolint:gosec // G115: two's complement bits
	case tensor.Uint8:
		b[0] = byte(v.Int64())
	case tensor.Bool:
		b[0] = 0
		if v.Bool() {
			b[0] = 1
		}
	}
}

func getValue(b []byte, dt tensor.DataType) tensor.Value {
	switch dt {
	case tensor.Float32:
		return tensor.ValueOf(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case tensor.Float64:
		return tensor.ValueOf(math.Float64frombits(binary.LittleEndian.Uint64(b)))
	case tensor.Int32:
		return tensor.ValueOf(int32(binary.LittleEndian.Uint32(b))) //nolint:gosec // G115: two's complement bits
	case tensor.Int64:
		return tensor.ValueOf(int64(binary.LittleEndian.Uint64(b))) //nolint:gosec // G115: two's complement bits
	case tensor.Uint8:
		return tensor.ValueOf(b[0])
	default:
		return tensor.ValueOf(b[0] != 0)
	}
}
