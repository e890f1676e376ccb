package functions

import (
	"math"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/einstein/internal/expr"
	"github.com/born-ml/einstein/internal/index"
	"github.com/born-ml/einstein/internal/tensor"
)

func eval(t *testing.T, f expr.Func, args ...float64) float64 {
	t.Helper()
	nodes := make([]expr.Node, len(args))
	for n, a := range args {
		nodes[n] = expr.Const(a)
	}
	node, err := expr.Apply(f, nodes...)
	require.NoError(t, err)
	return node.Sum(nil, nil).Float64()
}

func TestElementary(t *testing.T) {
	assert.InDelta(t, 1.0, eval(t, Sin, math.Pi/2), 1e-12)
	assert.InDelta(t, 3.0, eval(t, Abs, -3), 1e-12)
	assert.InDelta(t, 8.0, eval(t, Pow, 2, 3), 1e-12)
	assert.InDelta(t, 5.0, eval(t, Hypot, 3, 4), 1e-12)
	assert.InDelta(t, math.Pi/4, eval(t, Atan2, 1, 1), 1e-12)
	assert.InDelta(t, math.Log(6), eval(t, Lgamma, 4), 1e-12)
	assert.InDelta(t, 24.0, eval(t, Gamma, 5), 1e-9)
}

func TestSpecial(t *testing.T) {
	assert.InDelta(t, 1.0/12, eval(t, Beta, 2, 3), 1e-12)
	assert.InDelta(t, math.Pi*math.Pi/6, eval(t, Zeta, 2), 1e-10)
	assert.InDelta(t, math.Pi/2, eval(t, CompleteK, 0), 1e-12)
	assert.InDelta(t, math.Pi/2, eval(t, CompleteE, 0), 1e-12)
	assert.InDelta(t, 0.5, eval(t, EllipticF, 0, 0.5), 1e-12)
	assert.InDelta(t, -0.5772156649015329, eval(t, Digamma, 1), 1e-10)
}

func TestElementwise(t *testing.T) {
	x, err := tensor.FromSlice([]int32{1, 4, 9}, tensor.Shape{3})
	require.NoError(t, err)
	y := tensor.Zeros[float64](tensor.Shape{3})

	i := index.Symbol('i')
	xi, err := expr.Of(expr.Dense(x), i)
	require.NoError(t, err)
	root, err := expr.Apply(Sqrt, xi)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, root.DType())

	yi, err := expr.Of(expr.Dense(y), i)
	require.NoError(t, err)
	require.NoError(t, yi.Assign(root))
	assert.Equal(t, []float64{1, 2, 3}, y.Data())
}

func TestArgumentErrors(t *testing.T) {
	_, err := expr.Apply(Sin, expr.Const(true))
	assert.True(t, errors.Is(err, tensor.ErrIncompatibleElementType))

	_, err = expr.Apply(Pow, expr.Const(2.0))
	assert.True(t, errors.Is(err, expr.ErrArity))
}

func TestLookup(t *testing.T) {
	f, ok := Lookup("atan2")
	require.True(t, ok)
	assert.Equal(t, 2, f.Arity)

	_, ok = Lookup("frobnicate")
	assert.False(t, ok)

	names := Names()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "comp_ellint_1")
	assert.Contains(t, names, "exp")
}
