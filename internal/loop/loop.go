// Package loop drives nested loops over a list of extents.
package loop

import (
	"fmt"

	"github.com/born-ml/einstein/internal/index"
)

// Run calls fn once for every coordinate tuple of extents, in row-major order
// (the first extent is the outermost loop). A Fixed extent is used as the loop
// bound directly; a Deferred one is fetched from dynamic, which receives the
// position of the extent.
//
// Expressions resolve every extent they loop over to a Fixed size when they
// are built (CheckTarget, CheckSummation and the per-site validation), so
// evaluation always passes a nil dynamic. A caller driving loops over a Source
// whose sizes are only known at run time supplies dynamic instead.
//
// With no extents fn is called exactly once with no coordinates.
//
// The coordinate slice passed to fn is reused between calls; fn must copy it
// to retain it.
func Run(extents []index.Extent, dynamic func(n int) int, fn func(coords []int)) {
	bounds := make([]int, len(extents))
	for n, e := range extents {
		size, ok := e.Size()
		if !ok {
			if dynamic == nil {
				panic(fmt.Sprintf("loop: deferred extent at position %d with no dynamic extent", n))
			}
			size = dynamic(n)
		}
		bounds[n] = size
	}
	coords := make([]int, 0, len(bounds))
	nest(bounds, coords, fn)
}

// Shape calls fn for every coordinate tuple of a storage shape.
func Shape(dims []int, fn func(coords []int)) {
	coords := make([]int, 0, len(dims))
	nest(dims, coords, fn)
}

// nest loops over the first remaining bound and recurses on the rest,
// appending the chosen coordinate.
func nest(bounds, coords []int, fn func(coords []int)) {
	if len(bounds) == 0 {
		fn(coords)
		return
	}
	for i := 0; i < bounds[0]; i++ {
		nest(bounds[1:], append(coords, i), fn)
	}
}
