package expr

import (
	"github.com/pkg/errors"

	"github.com/born-ml/einstein/internal/index"
	"github.com/born-ml/einstein/internal/tensor"
)

// Negation is -x. Its map is the map of x.
type Negation struct {
	x Node
}

// Neg returns -a. The element type of a must be a signed number.
func Neg(a Node) (Node, error) {
	if a == nil {
		return nil, errors.Wrap(ErrNilNode, "operand of unary -")
	}
	if _, err := tensor.Negate(a.DType()); err != nil {
		return nil, errors.WithMessagef(err, "-%s", a.Map())
	}
	return &Negation{x: a}, nil
}

// Operand returns the negated node.
func (n *Negation) Operand() Node { return n.x }

func (n *Negation) Map() index.Map { return n.x.Map() }

func (n *Negation) DType() tensor.DataType { return n.x.DType() }

func (n *Negation) Extent(pos int) index.Extent { return n.x.Extent(pos) }

func (n *Negation) Contracting(s index.Symbol) bool { return n.x.Contracting(s) }

func (n *Negation) Subscript(coords []int) tensor.Value {
	return tensor.Neg(n.x.Subscript(coords))
}

func (n *Negation) Sum(free []index.Symbol, values []int) tensor.Value {
	return tensor.Neg(n.x.Sum(free, values))
}

func (n *Negation) validate(free []index.Symbol) error { return n.x.validate(free) }
