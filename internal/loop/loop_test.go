package loop

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/born-ml/einstein/internal/index"
)

func collect(extents []index.Extent, dynamic func(int) int) [][]int {
	var got [][]int
	Run(extents, dynamic, func(coords []int) {
		got = append(got, append([]int(nil), coords...))
	})
	return got
}

func TestRunRowMajor(t *testing.T) {
	got := collect([]index.Extent{index.Fixed(2), index.Fixed(3)}, nil)
	want := [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Run() mismatch (-want +got):\n%s", diff)
	}
}

func TestRunRankZero(t *testing.T) {
	calls := 0
	Run(nil, nil, func(coords []int) {
		calls++
		assert.Empty(t, coords)
	})
	assert.Equal(t, 1, calls)
}

func TestRunDeferredUsesDynamicExtent(t *testing.T) {
	var asked []int
	dynamic := func(n int) int {
		asked = append(asked, n)
		return 2
	}
	got := collect([]index.Extent{index.Fixed(1), index.Deferred}, dynamic)

	assert.Equal(t, [][]int{{0, 0}, {0, 1}}, got)
	assert.Equal(t, []int{1}, asked)
}

func TestRunDeferredWithoutDynamicPanics(t *testing.T) {
	assert.Panics(t, func() {
		Run([]index.Extent{index.Deferred}, nil, func([]int) {})
	})
}

func TestRunZeroExtent(t *testing.T) {
	calls := 0
	Run([]index.Extent{index.Fixed(3), index.Fixed(0)}, nil, func([]int) { calls++ })
	assert.Zero(t, calls)
}

func TestShape(t *testing.T) {
	count := 0
	last := []int(nil)
	Shape([]int{2, 2, 2}, func(coords []int) {
		count++
		last = append(last[:0], coords...)
	})
	assert.Equal(t, 8, count)
	assert.Equal(t, []int{1, 1, 1}, last)
}
