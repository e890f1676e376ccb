package expr

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/born-ml/einstein/internal/index"
	"github.com/born-ml/einstein/internal/loop"
	"github.com/born-ml/einstein/internal/tensor"
)

// Op is the operator of a Binary node.
type Op int

// Binary operators.
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

// String returns the operator symbol.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// multiplicative reports whether a symbol shared by both operands is
// contracted by the operator.
func (op Op) multiplicative() bool {
	return op == OpMul || op == OpDiv
}

// apply computes a op b in dt.
func (op Op) apply(a, b tensor.Value, dt tensor.DataType) tensor.Value {
	switch op {
	case OpAdd:
		return tensor.Add(a, b, dt)
	case OpSub:
		return tensor.Sub(a, b, dt)
	case OpMul:
		return tensor.Mul(a, b, dt)
	default:
		return tensor.Div(a, b, dt)
	}
}

// Binary combines two nodes with +, -, * or /. Its map is the left map
// followed by the right map. For * and / a symbol present in both operands
// is contracted unless the caller binds it; for + and - nothing is
// contracted.
type Binary struct {
	op          Op
	left, right Node
	m           index.Map
	dtype       tensor.DataType
}

func newBinary(op Op, a, b Node) (Node, error) {
	if a == nil || b == nil {
		return nil, errors.Wrapf(ErrNilNode, "operand of %s", op)
	}
	am, bm := a.Map(), b.Map()

	var (
		dt  tensor.DataType
		err error
	)
	switch op {
	case OpAdd, OpSub:
		err = multierr.Combine(
			index.CheckFree(am, bm),
			index.CheckFreeSet(freeSymbols(a), freeSymbols(b)),
			index.CheckContracted(am, bm, a.Contracting, b.Contracting),
		)
		if err == nil {
			dt, err = tensor.Promote(a.DType(), b.DType())
		}
	case OpMul:
		err = index.CheckCommon(am, bm)
		if err == nil {
			dt, err = tensor.Promote(a.DType(), b.DType())
		}
	case OpDiv:
		err = index.CheckCommon(am, bm)
		if err == nil {
			dt, err = tensor.Quotient(a.DType(), b.DType())
		}
	default:
		err = errors.Errorf("expr: unknown operator %d", op)
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "%s %s %s", am, op, bm)
	}
	return &Binary{op: op, left: a, right: b, m: index.Concat(am, bm), dtype: dt}, nil
}

// fold combines operands left to right with op.
func fold(op Op, a, b Node, more []Node) (Node, error) {
	n, err := newBinary(op, a, b)
	for _, c := range more {
		if err != nil {
			return nil, err
		}
		n, err = newBinary(op, n, c)
	}
	return n, err
}

// Add returns a + b (+ more...), folding from the left.
func Add(a, b Node, more ...Node) (Node, error) {
	return fold(OpAdd, a, b, more)
}

// Sub returns a - b.
func Sub(a, b Node) (Node, error) {
	return newBinary(OpSub, a, b)
}

// Mul returns a * b (* more...), folding from the left. Symbols shared by
// two factors are summed over unless they are bound by the assignment
// target.
//
// Example:
//
//	ab, err := expr.Mul(a, b) // A(i,k) * B(k,j)
func Mul(a, b Node, more ...Node) (Node, error) {
	return fold(OpMul, a, b, more)
}

// Div returns a / b. Dividing two integer operands yields float64.
func Div(a, b Node) (Node, error) {
	return newBinary(OpDiv, a, b)
}

// Op returns the operator.
func (n *Binary) Op() Op { return n.op }

// Operands returns the left and right operand.
func (n *Binary) Operands() (Node, Node) { return n.left, n.right }

func (n *Binary) Map() index.Map { return n.m }

func (n *Binary) DType() tensor.DataType { return n.dtype }

func (n *Binary) Extent(pos int) index.Extent {
	if l := n.left.Map().Len(); pos >= l {
		return n.right.Extent(pos - l)
	}
	return n.left.Extent(pos)
}

func (n *Binary) Contracting(s index.Symbol) bool {
	if n.op.multiplicative() && n.left.Map().Has(s) && n.right.Map().Has(s) {
		return true
	}
	return n.left.Contracting(s) || n.right.Contracting(s)
}

func (n *Binary) Subscript(coords []int) tensor.Value {
	rankCheck(n.m, coords)
	l := n.left.Map().Len()
	return n.op.apply(n.left.Subscript(coords[:l]), n.right.Subscript(coords[l:]), n.dtype)
}

// shared returns the symbols this node contracts when free is bound.
func (n *Binary) shared(free []index.Symbol) []index.Symbol {
	if !n.op.multiplicative() {
		return nil
	}
	return index.Shared(n.left.Map(), n.right.Map(), free)
}

// Sum evaluates the node for the bound symbols. For * and / it loops over
// the symbols shared by both operands, starting from zero, and evaluates each
// operand with those symbols bound as well.
func (n *Binary) Sum(free []index.Symbol, values []int) tensor.Value {
	shared := n.shared(free)
	if len(shared) == 0 {
		return n.op.apply(n.left.Sum(free, values), n.right.Sum(free, values), n.dtype)
	}

	sm, err := index.SummationOf(n.m, shared)
	if err != nil {
		panic(err) // rejected by validate
	}
	acc := tensor.Zero(n.dtype)
	loop.Run(sm.Extents(), nil, func(r []int) {
		f, v := bind(free, values, shared, r)
		acc = tensor.Add(acc, n.op.apply(n.left.Sum(f, v), n.right.Sum(f, v), n.dtype), n.dtype)
	})
	return acc
}

func (n *Binary) validate(free []index.Symbol) error {
	shared := n.shared(free)
	if len(shared) > 0 {
		if _, err := index.SummationOf(n.m, shared); err != nil {
			return err
		}
		free, _ = bind(free, nil, shared, nil)
	}
	if err := n.left.validate(free); err != nil {
		return err
	}
	return n.right.validate(free)
}
