package index

import (
	"strings"

	"github.com/pkg/errors"
)

// Entry is one free dimension of an expression node.
type Entry struct {
	Symbol Symbol
	Extent Extent

	// Source is the position of the dimension in the object the map was
	// derived from: the storage dimension for a subscripted tensor, or the
	// position in the parent map for a summation map.
	Source int
}

// Map is the ordered association between the symbols of an expression node
// and their extents. A symbol used twice keeps two entries.
//
// Maps are immutable: every method returns copies.
type Map struct {
	entries []Entry
}

// NewMap returns a map holding the given entries, in order.
func NewMap(entries ...Entry) Map {
	return Map{entries: append([]Entry(nil), entries...)}
}

// Derive builds the map of an object of the given extents subscripted by
// subs. Position p contributes an entry iff subs[p] is a Symbol; Coord
// positions are dropped.
func Derive(subs []Subscript, extents []Extent) (Map, error) {
	if len(subs) != len(extents) {
		return Map{}, errors.Wrapf(ErrRankMismatch, "got %d subscripts for rank %d", len(subs), len(extents))
	}

	entries := make([]Entry, 0, len(subs))
	for p, sub := range subs {
		switch s := sub.(type) {
		case Symbol:
			if s == Absent {
				return Map{}, errors.Wrapf(ErrAbsentSymbol, "position %d", p)
			}
			entries = append(entries, Entry{Symbol: s, Extent: extents[p], Source: p})
		case Coord:
			if s < 0 {
				return Map{}, errors.Wrapf(ErrCoordOutOfRange, "position %d: %d", p, s)
			}
			if n, ok := extents[p].Size(); ok && int(s) >= n {
				return Map{}, errors.Wrapf(ErrCoordOutOfRange, "position %d: %d not below extent %d", p, s, n)
			}
		default:
			return Map{}, errors.Errorf("index: unsupported subscript %T at position %d", sub, p)
		}
	}
	return Map{entries: entries}, nil
}

// Concat joins maps in order. It is a concatenation, not a union: a symbol
// present in several maps keeps one entry per occurrence.
func Concat(maps ...Map) Map {
	n := 0
	for _, m := range maps {
		n += len(m.entries)
	}
	entries := make([]Entry, 0, n)
	for _, m := range maps {
		entries = append(entries, m.entries...)
	}
	return Map{entries: entries}
}

// Len returns the number of entries, i.e. the rank of the node.
func (m Map) Len() int {
	return len(m.entries)
}

// Entry returns the n-th entry.
func (m Map) Entry(n int) Entry {
	return m.entries[n]
}

// Entries returns a copy of the entries.
func (m Map) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Symbols returns the symbol of every entry, repetitions included.
func (m Map) Symbols() []Symbol {
	out := make([]Symbol, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Symbol
	}
	return out
}

// Unique returns each symbol once, in order of first occurrence.
func (m Map) Unique() []Symbol {
	out := make([]Symbol, 0, len(m.entries))
	for _, e := range m.entries {
		if !Contains(out, e.Symbol) {
			out = append(out, e.Symbol)
		}
	}
	return out
}

// Extents returns the extent of every entry.
func (m Map) Extents() []Extent {
	out := make([]Extent, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Extent
	}
	return out
}

// Location returns the position of the first entry for s. The boolean is
// false when s does not occur in the map.
func (m Map) Location(s Symbol) (int, bool) {
	for i, e := range m.entries {
		if e.Symbol == s {
			return i, true
		}
	}
	return -1, false
}

// Has reports whether s occurs in the map.
func (m Map) Has(s Symbol) bool {
	_, ok := m.Location(s)
	return ok
}

// Count returns how many entries use s.
func (m Map) Count(s Symbol) int {
	n := 0
	for _, e := range m.entries {
		if e.Symbol == s {
			n++
		}
	}
	return n
}

// FixedExtent returns the first Fixed extent recorded for s and its position.
// The boolean is false if s is absent or every occurrence is Deferred.
func (m Map) FixedExtent(s Symbol) (size, pos int, ok bool) {
	for i, e := range m.entries {
		if e.Symbol != s {
			continue
		}
		if n, fixed := e.Extent.Size(); fixed {
			return n, i, true
		}
	}
	return 0, -1, false
}

// String renders the map as "(i:3,j:deferred)".
func (m Map) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, e := range m.entries {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(e.Symbol.String())
		sb.WriteByte(':')
		sb.WriteString(e.Extent.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
