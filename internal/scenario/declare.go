package scenario

import (
	"math/rand"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/born-ml/einstein/internal/expr"
	"github.com/born-ml/einstein/internal/safetensors"
	"github.com/born-ml/einstein/internal/special"
	"github.com/born-ml/einstein/internal/tensor"
)

// variable is a declared tensor.
type variable struct {
	src expr.Source

	// values, text and entry are nil for constant tensors.
	values func() []float64
	text   func() string
	entry  func() safetensors.Entry
}

// declare builds the tensor described by d. Relative load paths are resolved
// against dir.
func declare(name string, d Declaration, dir string) (variable, error) {
	var stored *safetensors.Entry
	if d.Load != "" {
		e, err := load(name, d, dir)
		if err != nil {
			return variable{}, errors.WithMessage(err, name)
		}
		stored = &e
	}

	typ := d.Type
	switch {
	case typ != "":
	case stored != nil:
		typ = stored.DType.String()
	default:
		typ = "float64"
	}
	dt, err := tensor.ParseDataType(typ)
	if err != nil {
		return variable{}, errors.Wrapf(ErrBadDeclaration, "%s: %v", name, err)
	}

	var v variable
	switch dt {
	case tensor.Float32:
		v, err = declareAs[float32](d, stored)
	case tensor.Float64:
		v, err = declareAs[float64](d, stored)
	case tensor.Int32:
		v, err = declareAs[int32](d, stored)
	case tensor.Int64:
		v, err = declareAs[int64](d, stored)
	case tensor.Uint8:
		v, err = declareAs[uint8](d, stored)
	case tensor.Bool:
		v, err = declareAs[bool](d, stored)
	}
	if err != nil {
		return variable{}, errors.WithMessage(err, name)
	}
	return v, nil
}

// load reads the stored tensor a declaration refers to.
func load(name string, d Declaration, dir string) (safetensors.Entry, error) {
	if d.Kind != "" || d.Data != nil || d.Fill != nil || d.Random != nil {
		return safetensors.Entry{}, errors.Wrap(ErrBadDeclaration, "load excludes kind, data, fill and random")
	}
	path := d.Load
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, path)
	}
	f, err := safetensors.ReadFile(path)
	if err != nil {
		return safetensors.Entry{}, errors.Wrapf(ErrBadDeclaration, "%v", err)
	}
	key := d.Key
	if key == "" {
		key = name
	}
	e, err := f.Lookup(key)
	if err != nil {
		return safetensors.Entry{}, errors.Wrapf(ErrBadDeclaration, "%s: %v", path, err)
	}
	if d.Shape != nil && !e.Shape.Equal(d.Shape) {
		return safetensors.Entry{}, errors.Wrapf(ErrBadDeclaration, "%s: stored shape %v, declared %v", path, e.Shape, d.Shape)
	}
	return e, nil
}

func declareAs[T tensor.DType](d Declaration, stored *safetensors.Entry) (variable, error) {
	switch d.Kind {
	case "":
	case "delta", "levi_civita":
		if d.Rank < 1 {
			return variable{}, errors.Wrapf(ErrBadDeclaration, "%s needs a positive rank, got %d", d.Kind, d.Rank)
		}
		if d.Kind == "delta" {
			return variable{src: special.Delta[T](d.Rank)}, nil
		}
		return variable{src: special.LeviCivita[T](d.Rank)}, nil
	default:
		return variable{}, errors.Wrapf(ErrBadDeclaration, "unknown kind %q", d.Kind)
	}

	var (
		dense *tensor.Dense[T]
		err   error
	)
	if stored != nil {
		dense, err = safetensors.Decode[T](*stored)
	} else {
		dense, err = tensor.NewDense[T](tensor.Shape(d.Shape))
	}
	if err != nil {
		return variable{}, errors.Wrapf(ErrBadDeclaration, "%v", err)
	}

	switch {
	case d.Data != nil:
		if len(d.Data) != dense.NumElements() {
			return variable{}, errors.Wrapf(ErrBadDeclaration, "shape %v needs %d values, got %d",
				d.Shape, dense.NumElements(), len(d.Data))
		}
		for n, x := range d.Data {
			dense.Data()[n] = tensor.As[T](tensor.ValueOf(x))
		}
	case d.Fill != nil:
		dense.Fill(tensor.As[T](tensor.ValueOf(*d.Fill)))
	case d.Random != nil:
		if d.Random.Min > d.Random.Max {
			return variable{}, errors.Wrapf(ErrBadDeclaration, "random range [%d, %d] is empty", d.Random.Min, d.Random.Max)
		}
		tensor.RandomInts(dense, rand.New(rand.NewSource(d.Random.Seed)), d.Random.Min, d.Random.Max) //nolint:gosec // G404: reproducible data
	}

	return variable{
		src: expr.Dense(dense),
		values: func() []float64 {
			out := make([]float64, dense.NumElements())
			for n, x := range dense.Data() {
				out[n] = tensor.ValueOf(x).Float64()
			}
			return out
		},
		text:  func() string { return tensor.Sprint(dense) },
		entry: func() safetensors.Entry { return safetensors.Encode(dense) },
	}, nil
}
