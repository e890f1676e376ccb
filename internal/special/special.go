// Package special provides constant tensors that compute their elements on
// the fly: the Kronecker delta and the Levi-Civita symbol. Their extents are
// always deferred; the size of every dimension comes from the other operands
// of the expression they appear in.
package special

import (
	"fmt"

	"github.com/born-ml/einstein/internal/index"
	"github.com/born-ml/einstein/internal/tensor"
)

// DeltaTensor is the Kronecker delta of a given rank: 1 where all coordinates
// are equal, 0 elsewhere.
type DeltaTensor[T tensor.DType] struct {
	rank int
}

// Delta returns the Kronecker delta of rank, which must be at least 1.
//
// Example:
//
//	d, _ := expr.Of(special.Delta[float64](2), i, j)
//	s, _ := expr.Mul(d, ui, uj) // δ(i,j) u(i) u(j) = Σ u(i)²
func Delta[T tensor.DType](rank int) *DeltaTensor[T] {
	if rank < 1 {
		panic(fmt.Sprintf("special: delta rank %d", rank))
	}
	return &DeltaTensor[T]{rank: rank}
}

func (d *DeltaTensor[T]) Rank() int { return d.rank }

func (d *DeltaTensor[T]) DType() tensor.DataType { return tensor.DataTypeOf[T]() }

func (d *DeltaTensor[T]) Extent(int) index.Extent { return index.Deferred }

func (d *DeltaTensor[T]) Value(coords []int) tensor.Value {
	for _, c := range coords[1:] {
		if c != coords[0] {
			return tensor.Zero(d.DType())
		}
	}
	return tensor.ValueOf[int64](1).Convert(d.DType())
}

// LeviCivitaTensor is the permutation symbol of a given rank: +1 for even
// permutations of (0, 1, ..., rank-1), -1 for odd ones, 0 otherwise.
type LeviCivitaTensor[T tensor.DType] struct {
	rank int
}

// LeviCivita returns the Levi-Civita symbol of rank, which must be at least 1.
// T should be a signed type.
//
// Example:
//
//	eps, _ := expr.Of(special.LeviCivita[float64](3), i, j, k)
//	uxv, _ := expr.Mul(eps, uj, vk) // (u × v)(i)
func LeviCivita[T tensor.DType](rank int) *LeviCivitaTensor[T] {
	if rank < 1 {
		panic(fmt.Sprintf("special: levi-civita rank %d", rank))
	}
	return &LeviCivitaTensor[T]{rank: rank}
}

func (e *LeviCivitaTensor[T]) Rank() int { return e.rank }

func (e *LeviCivitaTensor[T]) DType() tensor.DataType { return tensor.DataTypeOf[T]() }

func (e *LeviCivitaTensor[T]) Extent(int) index.Extent { return index.Deferred }

func (e *LeviCivitaTensor[T]) Value(coords []int) tensor.Value {
	return tensor.ValueOf(int64(Sign(coords))).Convert(e.DType())
}

// Sign returns the sign of coords as a permutation of 0..len(coords)-1, or 0
// if it is not one.
func Sign(coords []int) int {
	n := len(coords)
	seen := make([]bool, n)
	for _, c := range coords {
		if c < 0 || c >= n || seen[c] {
			return 0
		}
		seen[c] = true
	}
	sign := 1
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			if coords[a] > coords[b] {
				sign = -sign
			}
		}
	}
	return sign
}
