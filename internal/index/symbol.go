// Package index implements the index algebra behind indicial (Einstein)
// notation: symbols, extents, index maps and the compatibility checks that
// decide whether two subscripted expressions may be combined.
package index

import "strconv"

// Symbol names one tensor dimension in an expression, e.g. 'i' in A(i,j).
// It carries no value until it is bound during evaluation.
type Symbol rune

// Absent is the reserved symbol meaning "no symbol". It is never a valid
// subscript.
const Absent Symbol = 0

// String returns the symbol as text.
func (s Symbol) String() string {
	if s == Absent {
		return "<absent>"
	}
	return string(rune(s))
}

// Subscript is one argument of a subscript list: a Symbol (loop over this
// dimension) or a Coord (fix this dimension to a position).
type Subscript interface {
	isSubscript()
}

// Coord is a concrete integer subscript. A dimension fixed by a Coord
// contributes nothing to the Index Map.
type Coord int

func (Symbol) isSubscript() {}
func (Coord) isSubscript()  {}

// String returns the coordinate as text.
func (c Coord) String() string {
	return strconv.Itoa(int(c))
}

// Symbols converts a string such as "ijk" into its symbols, one per rune.
func Symbols(s string) []Symbol {
	out := make([]Symbol, 0, len(s))
	for _, r := range s {
		out = append(out, Symbol(r))
	}
	return out
}

// Contains reports whether s is one of set.
func Contains(set []Symbol, s Symbol) bool {
	for _, x := range set {
		if x == s {
			return true
		}
	}
	return false
}
