package index

import (
	"fmt"

	"github.com/pkg/errors"
)

// Summation returns the map of the symbols of m that are summed when the
// symbols in free are bound: one entry per unique symbol of m not in free.
// Each entry takes the first Fixed extent of its symbol in m, and its Source
// is the position of that occurrence.
func Summation(m Map, free []Symbol) (Map, error) {
	summed := make([]Symbol, 0, m.Len())
	for _, s := range m.Unique() {
		if !Contains(free, s) {
			summed = append(summed, s)
		}
	}
	return SummationOf(m, summed)
}

// SummationOf returns the summation map for an explicit list of symbols,
// resolving each extent from m. A symbol with no Fixed occurrence in m fails
// with ErrIndeterminateContractionExtent.
func SummationOf(m Map, symbols []Symbol) (Map, error) {
	entries := make([]Entry, 0, len(symbols))
	for _, s := range symbols {
		n, pos, ok := m.FixedExtent(s)
		if !ok {
			return Map{}, errors.Wrapf(ErrIndeterminateContractionExtent, "index %s in %s", s, m)
		}
		entries = append(entries, Entry{Symbol: s, Extent: Fixed(n), Source: pos})
	}
	return Map{entries: entries}, nil
}

// Shared returns the unique symbols present in both a and b but not in free,
// in order of first occurrence in a.
func Shared(a, b Map, free []Symbol) []Symbol {
	var out []Symbol
	for _, s := range a.Unique() {
		if b.Has(s) && !Contains(free, s) {
			out = append(out, s)
		}
	}
	return out
}

// Bind fills dst with one coordinate per entry of m. The value of a symbol is
// taken from r when it is in summed, otherwise from values when it is in
// free. Every symbol of m must be in one of the two lists.
func Bind(m Map, summed []Symbol, r []int, free []Symbol, values []int, dst []int) []int {
	dst = dst[:0]
	for _, e := range m.entries {
		dst = append(dst, lookup(e.Symbol, summed, r, free, values))
	}
	return dst
}

func lookup(s Symbol, summed []Symbol, r []int, free []Symbol, values []int) int {
	for i, x := range summed {
		if x == s {
			return r[i]
		}
	}
	for i, x := range free {
		if x == s {
			return values[i]
		}
	}
	panic(fmt.Sprintf("index: symbol %s is neither summed nor bound", s))
}
