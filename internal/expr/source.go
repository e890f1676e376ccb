package expr

import (
	"github.com/born-ml/einstein/internal/index"
	"github.com/born-ml/einstein/internal/tensor"
)

// Source is anything that can be subscripted: dense storage or a constant
// tensor computed on the fly.
type Source interface {
	// Rank returns the number of dimensions.
	Rank() int

	// DType returns the element type.
	DType() tensor.DataType

	// Extent returns the size of dimension dim. Constant tensors report
	// index.Deferred; their size comes from the other operands.
	Extent(dim int) index.Extent

	// Value returns the element at coords.
	Value(coords []int) tensor.Value
}

// Sink is a Source that can be assigned into.
type Sink interface {
	Source

	// SetValue stores v, converted to the sink's element type, at coords.
	SetValue(coords []int, v tensor.Value)
}

// dense adapts a tensor.Dense to Sink.
type dense[T tensor.DType] struct {
	*tensor.Dense[T]
}

// Dense wraps d so that it can be subscripted and assigned into.
func Dense[T tensor.DType](d *tensor.Dense[T]) Sink {
	return dense[T]{d}
}

func (d dense[T]) Extent(dim int) index.Extent {
	return index.Fixed(d.Dim(dim))
}
