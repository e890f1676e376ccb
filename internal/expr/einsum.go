package expr

import (
	"sort"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/born-ml/einstein/internal/index"
)

// einsumSpec is a parsed subscript string such as "ij,jk->ik".
type einsumSpec struct {
	inputs [][]index.Symbol
	output []index.Symbol
}

// parseEinsum parses subscripts. Without "->" the output is every symbol
// that occurs exactly once, in alphabetical order.
func parseEinsum(subscripts string) (einsumSpec, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, subscripts)

	lhs, rhs, explicit := strings.Cut(s, "->")
	var spec einsumSpec
	counts := make(map[index.Symbol]int)
	for _, term := range strings.Split(lhs, ",") {
		syms, err := einsumTerm(term)
		if err != nil {
			return einsumSpec{}, err
		}
		for _, sym := range syms {
			counts[sym]++
		}
		spec.inputs = append(spec.inputs, syms)
	}

	if explicit {
		out, err := einsumTerm(rhs)
		if err != nil {
			return einsumSpec{}, err
		}
		for _, sym := range out {
			if counts[sym] == 0 {
				return einsumSpec{}, errors.Wrapf(ErrBadEinsum, "output index %s is not used by any operand", sym)
			}
		}
		spec.output = out
		return spec, nil
	}

	for sym, n := range counts {
		if n == 1 {
			spec.output = append(spec.output, sym)
		}
	}
	sort.Slice(spec.output, func(i, j int) bool { return spec.output[i] < spec.output[j] })
	return spec, nil
}

func einsumTerm(term string) ([]index.Symbol, error) {
	syms := index.Symbols(term)
	for _, sym := range syms {
		if !unicode.IsLetter(rune(sym)) {
			return nil, errors.Wrapf(ErrBadEinsum, "invalid index %q in %q", rune(sym), term)
		}
	}
	return syms, nil
}

// Einsum evaluates a product of operands written in einsum notation into out:
//
//	expr.Einsum("ij,jk->ik", C, A, B) // C(i,j) = A(i,k) * B(k,j)
//
// Summation follows the rules of Mul and Assign: an index missing from the
// output must be shared by at least two operands, or repeated within one.
func Einsum(subscripts string, out Sink, operands ...Source) error {
	spec, err := parseEinsum(subscripts)
	if err != nil {
		return err
	}
	if len(spec.inputs) != len(operands) {
		return errors.Wrapf(ErrBadEinsum, "%q names %d operands, got %d", subscripts, len(spec.inputs), len(operands))
	}

	var product Node
	for n, src := range operands {
		leaf, err := Of(src, symbolSubs(spec.inputs[n])...)
		if err != nil {
			return errors.WithMessagef(err, "operand %d", n)
		}
		if product == nil {
			product = leaf
			continue
		}
		if product, err = Mul(product, leaf); err != nil {
			return err
		}
	}

	target, err := Of(out, symbolSubs(spec.output)...)
	if err != nil {
		return errors.WithMessage(err, "output")
	}
	return Assign(target, product)
}

func symbolSubs(syms []index.Symbol) []index.Subscript {
	out := make([]index.Subscript, len(syms))
	for i, s := range syms {
		out[i] = s
	}
	return out
}
