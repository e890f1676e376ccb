package index

import (
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/exp/maps"
)

// The checks below are pure functions over one or two maps. Each returns nil
// or every violation it found, combined with multierr; errors.Is matches the
// sentinel of any of them.

// CheckRepeated verifies the occurrences of each repeated symbol within one
// node: two Fixed occurrences must agree, and a symbol may not be Deferred at
// every occurrence since nothing could then resolve its size.
func CheckRepeated(m Map) error {
	groups := make(map[Symbol][]Extent)
	for _, e := range m.entries {
		groups[e.Symbol] = append(groups[e.Symbol], e.Extent)
	}
	symbols := maps.Keys(groups)
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	var errs error
	for _, s := range symbols {
		extents := groups[s]
		if len(extents) < 2 {
			continue
		}
		if err := checkOccurrences(s, extents); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func checkOccurrences(s Symbol, extents []Extent) error {
	deferred := 0
	for i, x := range extents {
		if x.IsDeferred() {
			deferred++
			continue
		}
		for _, y := range extents[i+1:] {
			if !x.Compatible(y) {
				return errors.Wrapf(ErrMismatchedRepeatedIndex, "index %s: %s vs %s", s, x, y)
			}
		}
	}
	if deferred == len(extents) {
		return errors.Wrapf(ErrMismatchedRepeatedIndex, "index %s: all %d occurrences are deferred", s, deferred)
	}
	return nil
}

// CheckCommon verifies that every symbol present in both a and b has equal
// extents wherever both sides are Fixed. It guards multiplication, division
// and assignment.
func CheckCommon(a, b Map) error {
	var errs error
	for _, s := range a.Unique() {
		if err := commonExtents(s, a, b); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func commonExtents(s Symbol, a, b Map) error {
	for _, x := range a.entries {
		if x.Symbol != s {
			continue
		}
		for _, y := range b.entries {
			if y.Symbol == s && !x.Extent.Compatible(y.Extent) {
				return errors.Wrapf(ErrMismatchedCommonIndex, "index %s: %s vs %s", s, x.Extent, y.Extent)
			}
		}
	}
	return nil
}

// CheckFree verifies that a symbol occurring exactly once in each of a and b
// has compatible extents. It guards addition and subtraction.
func CheckFree(a, b Map) error {
	var errs error
	for _, x := range a.entries {
		if a.Count(x.Symbol) != 1 || b.Count(x.Symbol) != 1 {
			continue
		}
		pos, _ := b.Location(x.Symbol)
		y := b.entries[pos]
		if !x.Extent.Compatible(y.Extent) {
			errs = multierr.Append(errs,
				errors.Wrapf(ErrMismatchedFreeIndex, "index %s: %s vs %s", x.Symbol, x.Extent, y.Extent))
		}
	}
	return errs
}

// CheckFreeSet verifies that the two operands of a sum or difference have the
// same free symbols, in any order. An operand without free symbols, such as a
// scalar or a full contraction, is added at every coordinate of the other;
// CheckContracted keeps the symbols it sums out of the other operand.
func CheckFreeSet(a, b []Symbol) error {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	var errs error
	for _, s := range a {
		if !Contains(b, s) {
			errs = multierr.Append(errs, errors.Wrapf(ErrMismatchedFreeIndex, "index %s only on the left", s))
		}
	}
	for _, s := range b {
		if !Contains(a, s) {
			errs = multierr.Append(errs, errors.Wrapf(ErrMismatchedFreeIndex, "index %s only on the right", s))
		}
	}
	return errs
}

// CheckContracted verifies that a symbol summed inside one operand of a sum,
// difference or function call is not used unsummed by the other. Operands are
// evaluated with the same bound symbols, so such a symbol would take the
// other operand's coordinate instead of being summed. A symbol summed by both
// operands is summed by each on its own.
func CheckContracted(a, b Map, contractsA, contractsB func(Symbol) bool) error {
	var errs error
	for _, s := range a.Unique() {
		if contractsA(s) && b.Has(s) && !contractsB(s) {
			errs = multierr.Append(errs,
				errors.Wrapf(ErrMismatchedFreeIndex, "index %s is summed on the left and free on the right", s))
		}
	}
	for _, s := range b.Unique() {
		if contractsB(s) && a.Has(s) && !contractsA(s) {
			errs = multierr.Append(errs,
				errors.Wrapf(ErrMismatchedFreeIndex, "index %s is summed on the right and free on the left", s))
		}
	}
	return errs
}

// CheckSummation verifies the right-hand side of an assignment to target:
// every symbol of rhs that is not in target must be contracting, as reported
// by contracting, and must have a Fixed extent somewhere in rhs.
func CheckSummation(target, rhs Map, contracting func(Symbol) bool) error {
	var errs error
	for _, s := range rhs.Unique() {
		if target.Has(s) {
			continue
		}
		if !contracting(s) {
			errs = multierr.Append(errs, errors.Wrapf(ErrUnresolvedContraction, "index %s", s))
			continue
		}
		if _, _, ok := rhs.FixedExtent(s); !ok {
			errs = multierr.Append(errs,
				errors.Wrapf(ErrIndeterminateContractionExtent, "index %s is deferred everywhere", s))
		}
	}
	return errs
}

// CheckTarget verifies a map that is about to be written: no symbol may be
// repeated and every extent must be Fixed.
func CheckTarget(m Map) error {
	var errs error
	for i, e := range m.entries {
		if e.Extent.IsDeferred() {
			errs = multierr.Append(errs, errors.Wrapf(ErrDeferredTarget, "index %s", e.Symbol))
		}
		if first, _ := m.Location(e.Symbol); first != i {
			errs = multierr.Append(errs, errors.Wrapf(ErrRepeatedTargetIndex, "index %s", e.Symbol))
		}
	}
	return errs
}
