package expr

import (
	"github.com/pkg/errors"

	"github.com/born-ml/einstein/internal/index"
	"github.com/born-ml/einstein/internal/loop"
	"github.com/born-ml/einstein/internal/tensor"
)

// Tensor is a leaf over a subscripted Source, e.g. A(i,2,j). Positions fixed
// by an index.Coord are dropped from its map; a symbol repeated within the
// subscript list, as in A(i,i), is contracted by the leaf itself.
type Tensor struct {
	src   Source
	m     index.Map
	fixed []int // storage coordinates, with Coord subscripts filled in
}

// Of subscripts src. Each subscript is an index.Symbol or an index.Coord.
//
// Example:
//
//	a, err := expr.Of(expr.Dense(A), index.Symbol('i'), index.Coord(0))
func Of(src Source, subs ...index.Subscript) (*Tensor, error) {
	if src == nil {
		return nil, errors.Wrap(ErrNilNode, "subscripting a nil source")
	}
	extents := make([]index.Extent, src.Rank())
	for d := range extents {
		extents[d] = src.Extent(d)
	}
	m, err := index.Derive(subs, extents)
	if err != nil {
		return nil, err
	}
	if err := index.CheckRepeated(m); err != nil {
		return nil, err
	}

	fixed := make([]int, len(subs))
	for p, sub := range subs {
		if c, ok := sub.(index.Coord); ok {
			fixed[p] = int(c)
		}
	}
	return &Tensor{src: src, m: m, fixed: fixed}, nil
}

// Source returns the subscripted object.
func (t *Tensor) Source() Source { return t.src }

func (t *Tensor) Map() index.Map { return t.m }

func (t *Tensor) DType() tensor.DataType { return t.src.DType() }

func (t *Tensor) Extent(n int) index.Extent {
	return t.src.Extent(t.m.Entry(n).Source)
}

func (t *Tensor) Contracting(s index.Symbol) bool {
	return t.m.Count(s) > 1
}

// storage translates map coordinates into storage coordinates.
func (t *Tensor) storage(coords []int) []int {
	sc := append([]int(nil), t.fixed...)
	for n := 0; n < t.m.Len(); n++ {
		sc[t.m.Entry(n).Source] = coords[n]
	}
	return sc
}

func (t *Tensor) Subscript(coords []int) tensor.Value {
	rankCheck(t.m, coords)
	return t.src.Value(t.storage(coords))
}

// summed returns the symbols of the leaf that are not in free.
func (t *Tensor) summed(free []index.Symbol) []index.Symbol {
	var out []index.Symbol
	for _, s := range t.m.Unique() {
		if !index.Contains(free, s) {
			out = append(out, s)
		}
	}
	return out
}

func (t *Tensor) Sum(free []index.Symbol, values []int) tensor.Value {
	summed := t.summed(free)
	coords := make([]int, 0, t.m.Len())
	if len(summed) == 0 {
		return t.Subscript(index.Bind(t.m, nil, nil, free, values, coords))
	}

	sm, err := index.SummationOf(t.m, summed)
	if err != nil {
		panic(err) // rejected by validate
	}
	dt := t.DType()
	acc := tensor.Zero(dt)
	loop.Run(sm.Extents(), nil, func(r []int) {
		coords = index.Bind(t.m, summed, r, free, values, coords)
		acc = tensor.Add(acc, t.Subscript(coords), dt)
	})
	return acc
}

func (t *Tensor) validate(free []index.Symbol) error {
	summed := t.summed(free)
	if len(summed) == 0 {
		return nil
	}
	for _, s := range summed {
		if t.m.Count(s) < 2 {
			return errors.Wrapf(index.ErrUnresolvedContraction, "index %s of %s", s, t.m)
		}
	}
	if !t.DType().IsNumeric() {
		return errors.Wrapf(tensor.ErrIncompatibleElementType, "cannot sum %s elements of %s", t.DType(), t.m)
	}
	_, err := index.SummationOf(t.m, summed)
	return err
}

// Assign evaluates rhs into t. See Assign.
func (t *Tensor) Assign(rhs Node) error {
	return Assign(t, rhs)
}

// Fill stores v at every position of t. See Fill.
func (t *Tensor) Fill(v tensor.Value) error {
	return Fill(t, v)
}

// IndexLeaf is a lone index symbol used as a value: it evaluates to the
// coordinate the symbol is bound to. Its extent is always Deferred and it
// never contracts.
type IndexLeaf struct {
	m index.Map
}

// Index returns a leaf evaluating to the value of s.
func Index(s index.Symbol) (*IndexLeaf, error) {
	m, err := index.Derive([]index.Subscript{s}, []index.Extent{index.Deferred})
	if err != nil {
		return nil, err
	}
	return &IndexLeaf{m: m}, nil
}

func (x *IndexLeaf) Map() index.Map { return x.m }

// DType is Int64.
func (x *IndexLeaf) DType() tensor.DataType { return tensor.Int64 }

func (x *IndexLeaf) Extent(int) index.Extent { return index.Deferred }

func (x *IndexLeaf) Contracting(index.Symbol) bool { return false }

func (x *IndexLeaf) Subscript(coords []int) tensor.Value {
	rankCheck(x.m, coords)
	return tensor.ValueOf(int64(coords[0]))
}

func (x *IndexLeaf) Sum(free []index.Symbol, values []int) tensor.Value {
	return x.Subscript(index.Bind(x.m, nil, nil, free, values, make([]int, 0, 1)))
}

func (x *IndexLeaf) validate(free []index.Symbol) error {
	if s := x.m.Entry(0).Symbol; !index.Contains(free, s) {
		return errors.Wrapf(index.ErrUnresolvedContraction, "lone index %s is never bound", s)
	}
	return nil
}

// ScalarLeaf is a rank-0 constant.
type ScalarLeaf struct {
	v tensor.Value
}

// Scalar returns a leaf holding v.
func Scalar(v tensor.Value) *ScalarLeaf {
	return &ScalarLeaf{v: v}
}

// Const returns a leaf holding the Go value v.
func Const[T tensor.DType](v T) *ScalarLeaf {
	return Scalar(tensor.ValueOf(v))
}

func (c *ScalarLeaf) Map() index.Map { return index.Map{} }

func (c *ScalarLeaf) DType() tensor.DataType { return c.v.DType() }

func (c *ScalarLeaf) Extent(int) index.Extent {
	panic("expr: scalar has no extents")
}

func (c *ScalarLeaf) Contracting(index.Symbol) bool { return false }

func (c *ScalarLeaf) Subscript(coords []int) tensor.Value {
	rankCheck(index.Map{}, coords)
	return c.v
}

func (c *ScalarLeaf) Sum([]index.Symbol, []int) tensor.Value { return c.v }

func (c *ScalarLeaf) validate([]index.Symbol) error { return nil }
