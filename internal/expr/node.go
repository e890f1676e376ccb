// Package expr builds and evaluates tensor expressions written in indicial
// notation. Subscripting a tensor with index symbols yields a leaf node;
// combining nodes with Add, Sub, Mul, Div, Neg and Apply yields a tree whose
// index map is validated at every step. Assigning a tree into a subscripted
// target loops over the target's free indices and sums over every
// contracted one.
//
// Example:
//
//	i, j, k := index.Symbol('i'), index.Symbol('j'), index.Symbol('k')
//	a, _ := expr.Of(expr.Dense(A), i, k)
//	b, _ := expr.Of(expr.Dense(B), k, j)
//	ab, _ := expr.Mul(a, b)
//	c, _ := expr.Of(expr.Dense(C), i, j)
//	err := c.Assign(ab) // C(i,j) = A(i,k) * B(k,j)
package expr

import (
	"fmt"

	"github.com/born-ml/einstein/internal/index"
	"github.com/born-ml/einstein/internal/tensor"
)

// Node is an expression tree node. All variants share this contract.
//
// Nodes are immutable after construction. Every structural error is reported
// by the function that builds the node, so evaluation never fails.
type Node interface {
	// Map returns the index map of the node: one entry per symbol occurrence.
	Map() index.Map

	// DType returns the element type the node evaluates to.
	DType() tensor.DataType

	// Extent returns the extent of map position n, as reported by whatever
	// the node wraps.
	Extent(n int) index.Extent

	// Contracting reports whether s is summed away inside the node.
	Contracting(s index.Symbol) bool

	// Subscript evaluates the node with one coordinate per map entry.
	// It panics if len(coords) != Map().Len().
	Subscript(coords []int) tensor.Value

	// Sum evaluates the node with the symbols in free bound to values,
	// summing over every other symbol the node contracts.
	Sum(free []index.Symbol, values []int) tensor.Value

	// validate checks that Sum can be evaluated for the given free symbols:
	// every symbol summed at a site must be contracted there and have a
	// Fixed extent there.
	validate(free []index.Symbol) error
}

// bind returns free and values extended with the summed symbols and their
// loop coordinates. The inputs are never modified.
func bind(free []index.Symbol, values []int, summed []index.Symbol, r []int) ([]index.Symbol, []int) {
	f := make([]index.Symbol, 0, len(free)+len(summed))
	f = append(append(f, free...), summed...)
	v := make([]int, 0, len(values)+len(r))
	v = append(append(v, values...), r...)
	return f, v
}

// rankCheck panics when the number of coordinates differs from the rank.
func rankCheck(m index.Map, coords []int) {
	if len(coords) != m.Len() {
		panic(fmt.Sprintf("expr: expected %d coordinates for %s, got %d", m.Len(), m, len(coords)))
	}
}

// freeSymbols returns the symbols of n that it does not contract, in order of
// first occurrence.
func freeSymbols(n Node) []index.Symbol {
	var out []index.Symbol
	for _, s := range n.Map().Unique() {
		if !n.Contracting(s) {
			out = append(out, s)
		}
	}
	return out
}
