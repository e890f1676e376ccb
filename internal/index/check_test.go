package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

func entries(letters string, extents ...Extent) Map {
	syms := Symbols(letters)
	es := make([]Entry, len(syms))
	for i, s := range syms {
		es[i] = Entry{Symbol: s, Extent: extents[i], Source: i}
	}
	return NewMap(es...)
}

func TestCheckRepeated(t *testing.T) {
	tests := []struct {
		name string
		m    Map
		want error
	}{
		{"distinct", entries("ij", Fixed(2), Fixed(3)), nil},
		{"equal fixed", entries("ii", Fixed(3), Fixed(3)), nil},
		{"fixed and deferred", entries("ii", Deferred, Fixed(3)), nil},
		{"mismatched fixed", entries("ii", Fixed(3), Fixed(4)), ErrMismatchedRepeatedIndex},
		{"all deferred", entries("ii", Deferred, Deferred), ErrMismatchedRepeatedIndex},
		{"single deferred", entries("i", Deferred), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRepeated(tt.m)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCheckRepeatedReportsEverySymbol(t *testing.T) {
	m := entries("iijj", Fixed(2), Fixed(3), Deferred, Deferred)
	err := CheckRepeated(m)
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorIs(t, err, ErrMismatchedRepeatedIndex)
}

func TestCheckCommon(t *testing.T) {
	a := entries("ik", Fixed(2), Fixed(3))

	assert.NoError(t, CheckCommon(a, entries("kj", Fixed(3), Fixed(4))))
	assert.NoError(t, CheckCommon(a, entries("kj", Deferred, Fixed(4))))
	assert.NoError(t, CheckCommon(a, entries("mj", Fixed(7), Fixed(4))))
	assert.ErrorIs(t, CheckCommon(a, entries("kj", Fixed(5), Fixed(4))), ErrMismatchedCommonIndex)
}

func TestCheckFree(t *testing.T) {
	a := entries("ij", Fixed(2), Fixed(3))

	assert.NoError(t, CheckFree(a, entries("ij", Fixed(2), Fixed(3))))
	assert.NoError(t, CheckFree(a, entries("ji", Fixed(3), Fixed(2))))
	assert.NoError(t, CheckFree(a, entries("ij", Deferred, Fixed(3))))
	assert.ErrorIs(t, CheckFree(a, entries("ij", Fixed(2), Fixed(4))), ErrMismatchedFreeIndex)

	// A symbol repeated on one side is not free there, so it is not compared.
	assert.NoError(t, CheckFree(a, entries("jjk", Fixed(5), Fixed(5), Fixed(1))))
}

func TestCheckContracted(t *testing.T) {
	repeated := func(m Map) func(Symbol) bool {
		return func(s Symbol) bool { return m.Count(s) > 1 }
	}
	diag := entries("ii", Fixed(3), Fixed(3))
	vec := entries("i", Fixed(3))
	other := entries("j", Fixed(3))
	trace := entries("jj", Fixed(3), Fixed(3))

	assert.ErrorIs(t, CheckContracted(diag, vec, repeated(diag), repeated(vec)), ErrMismatchedFreeIndex)
	assert.ErrorIs(t, CheckContracted(vec, diag, repeated(vec), repeated(diag)), ErrMismatchedFreeIndex)

	// Summed symbols that the other side does not use broadcast.
	assert.NoError(t, CheckContracted(diag, other, repeated(diag), repeated(other)))
	// Summed on both sides, each operand sums on its own.
	assert.NoError(t, CheckContracted(diag, diag, repeated(diag), repeated(diag)))
	assert.NoError(t, CheckContracted(diag, trace, repeated(diag), repeated(trace)))
}

func TestCheckSummation(t *testing.T) {
	target := entries("ij", Fixed(2), Fixed(4))
	rhs := entries("ikkj", Fixed(2), Fixed(3), Fixed(3), Fixed(4))
	contracting := func(s Symbol) bool { return rhs.Count(s) > 1 }

	assert.NoError(t, CheckSummation(target, rhs, contracting))

	err := CheckSummation(entries("i", Fixed(2)), rhs, contracting)
	assert.ErrorIs(t, err, ErrUnresolvedContraction)

	deferred := entries("kk", Deferred, Deferred)
	err = CheckSummation(NewMap(), deferred, func(Symbol) bool { return true })
	assert.ErrorIs(t, err, ErrIndeterminateContractionExtent)
}

func TestCheckTarget(t *testing.T) {
	assert.NoError(t, CheckTarget(entries("ij", Fixed(2), Fixed(3))))
	assert.ErrorIs(t, CheckTarget(entries("ii", Fixed(2), Fixed(2))), ErrRepeatedTargetIndex)
	assert.ErrorIs(t, CheckTarget(entries("i", Deferred)), ErrDeferredTarget)
}
