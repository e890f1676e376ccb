package tensor

import (
	"io"
	"strings"

	"github.com/born-ml/einstein/internal/loop"
)

// Format writes d to w as nested brackets, innermost dimension last:
//
//	[[3 4] [6 8]]
//
// A rank-0 tensor is written as its single value.
func Format[T DType](w io.Writer, d *Dense[T]) error {
	_, err := io.WriteString(w, Sprint(d))
	return err
}

// Sprint returns the bracketed text form of d.
func Sprint[T DType](d *Dense[T]) string {
	rank := d.Rank()
	if rank == 0 {
		return d.Value(nil).String()
	}

	var sb strings.Builder
	prev := make([]int, rank)
	first := true
	loop.Shape(d.shape, func(coords []int) {
		if first {
			sb.WriteString(strings.Repeat("[", rank))
			first = false
		} else {
			// Close and reopen every dimension whose coordinate rolled over.
			depth := 0
			for depth < rank && coords[depth] == prev[depth] {
				depth++
			}
			closing := rank - 1 - depth
			sb.WriteString(strings.Repeat("]", closing))
			sb.WriteByte(' ')
			sb.WriteString(strings.Repeat("[", closing))
		}
		sb.WriteString(d.Value(coords).String())
		copy(prev, coords)
	})
	sb.WriteString(strings.Repeat("]", rank))
	return sb.String()
}
