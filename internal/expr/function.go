package expr

import (
	"github.com/pkg/errors"

	"github.com/born-ml/einstein/internal/index"
	"github.com/born-ml/einstein/internal/tensor"
)

// Func is a scalar function that can be lifted over expressions.
type Func struct {
	// Name identifies the function in errors.
	Name string

	// Arity is the number of arguments, or -1 for any number.
	Arity int

	// Result returns the element type produced for the given argument types,
	// or an error if the function does not accept them.
	Result func(args []tensor.DataType) (tensor.DataType, error)

	// Eval computes the function. It is only called with arguments whose
	// types Result accepted.
	Eval func(args []tensor.Value) tensor.Value
}

// Function applies a Func elementwise to its argument nodes. Its map is the
// concatenation of the argument maps. It introduces no contraction of its
// own: each argument sums over its own contracted symbols.
type Function struct {
	f     Func
	args  []Node
	ends  []int // cumulative ranks: args[a] owns map positions [ends[a-1], ends[a])
	m     index.Map
	dtype tensor.DataType
}

// Apply builds f(args...).
//
// Example:
//
//	s, err := expr.Apply(functions.Sin, x) // sin(X(i))
func Apply(f Func, args ...Node) (Node, error) {
	if f.Arity >= 0 && len(args) != f.Arity {
		return nil, errors.Wrapf(ErrArity, "%s takes %d arguments, got %d", f.Name, f.Arity, len(args))
	}
	if len(args) == 0 {
		return nil, errors.Wrapf(ErrArity, "%s needs at least one argument", f.Name)
	}

	var (
		m     index.Map
		ends  = make([]int, len(args))
		types = make([]tensor.DataType, len(args))
	)
	for a, arg := range args {
		if arg == nil {
			return nil, errors.Wrapf(ErrNilNode, "argument %d of %s", a, f.Name)
		}
		if err := index.CheckCommon(m, arg.Map()); err != nil {
			return nil, errors.WithMessagef(err, "argument %d of %s", a, f.Name)
		}
		for b, prev := range args[:a] {
			if err := index.CheckContracted(prev.Map(), arg.Map(), prev.Contracting, arg.Contracting); err != nil {
				return nil, errors.WithMessagef(err, "arguments %d and %d of %s", b, a, f.Name)
			}
		}
		m = index.Concat(m, arg.Map())
		ends[a] = m.Len()
		types[a] = arg.DType()
	}

	dt, err := f.Result(types)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s", f.Name)
	}
	return &Function{f: f, args: append([]Node(nil), args...), ends: ends, m: m, dtype: dt}, nil
}

// Name returns the name of the applied function.
func (n *Function) Name() string { return n.f.Name }

func (n *Function) Map() index.Map { return n.m }

func (n *Function) DType() tensor.DataType { return n.dtype }

// span returns the map positions owned by argument a.
func (n *Function) span(a int) (int, int) {
	if a == 0 {
		return 0, n.ends[0]
	}
	return n.ends[a-1], n.ends[a]
}

func (n *Function) Extent(pos int) index.Extent {
	for a := range n.args {
		if lo, hi := n.span(a); pos < hi {
			return n.args[a].Extent(pos - lo)
		}
	}
	panic(errors.Errorf("expr: position %d out of range for %s", pos, n.m))
}

func (n *Function) Contracting(s index.Symbol) bool {
	for _, arg := range n.args {
		if arg.Contracting(s) {
			return true
		}
	}
	return false
}

func (n *Function) Subscript(coords []int) tensor.Value {
	rankCheck(n.m, coords)
	vals := make([]tensor.Value, len(n.args))
	for a, arg := range n.args {
		lo, hi := n.span(a)
		vals[a] = arg.Subscript(coords[lo:hi])
	}
	return n.f.Eval(vals).Convert(n.dtype)
}

func (n *Function) Sum(free []index.Symbol, values []int) tensor.Value {
	vals := make([]tensor.Value, len(n.args))
	for a, arg := range n.args {
		vals[a] = arg.Sum(free, values)
	}
	return n.f.Eval(vals).Convert(n.dtype)
}

func (n *Function) validate(free []index.Symbol) error {
	for _, arg := range n.args {
		if err := arg.validate(free); err != nil {
			return err
		}
	}
	return nil
}
