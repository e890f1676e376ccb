package index

import (
	"fmt"
	"strconv"
)

// Extent is the size of one dimension. It is either Fixed, with a known
// non-negative size, or Deferred, in which case the size is taken from another
// occurrence of the same symbol before it is used as a loop bound.
//
// The zero value is Fixed(0).
type Extent struct {
	size     int
	deferred bool
}

// Deferred marks a dimension whose size is inferred from context. Constant
// tensors and lone indices report it for every dimension.
var Deferred = Extent{deferred: true}

// Fixed returns an extent of n. It panics if n is negative.
func Fixed(n int) Extent {
	if n < 0 {
		panic(fmt.Sprintf("index: negative extent %d", n))
	}
	return Extent{size: n}
}

// IsDeferred reports whether the extent is Deferred.
func (e Extent) IsDeferred() bool {
	return e.deferred
}

// Size returns the size and true for a Fixed extent, or 0 and false for a
// Deferred one.
func (e Extent) Size() (int, bool) {
	if e.deferred {
		return 0, false
	}
	return e.size, true
}

// Compatible reports whether two extents can describe the same dimension:
// a Deferred extent is compatible with anything, two Fixed ones must be equal.
func (e Extent) Compatible(other Extent) bool {
	if e.deferred || other.deferred {
		return true
	}
	return e.size == other.size
}

// String returns the size, or "deferred".
func (e Extent) String() string {
	if e.deferred {
		return "deferred"
	}
	return strconv.Itoa(e.size)
}
