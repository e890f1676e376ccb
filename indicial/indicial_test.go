// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package indicial_test

import (
	"errors"
	"testing"

	"github.com/born-ml/einstein/indicial"
	"github.com/born-ml/einstein/tensor"
)

func mustOf[T tensor.DType](t *testing.T, d *tensor.Dense[T], subs ...indicial.Subscript) *indicial.Tensor {
	t.Helper()
	x, err := indicial.OfDense(d, subs...)
	if err != nil {
		t.Fatalf("OfDense: %v", err)
	}
	return x
}

func TestMatrixProduct(t *testing.T) {
	A, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	B, _ := tensor.FromSlice([]float64{1, 0, 1, 1}, tensor.Shape{2, 2})
	C := tensor.Zeros[float64](tensor.Shape{2, 2})
	i, j, k := indicial.I, indicial.J, indicial.K

	ab, err := indicial.Mul(mustOf(t, A, i, k), mustOf(t, B, k, j))
	if err != nil {
		t.Fatal(err)
	}
	if err := indicial.Assign(mustOf(t, C, i, j), ab); err != nil {
		t.Fatal(err)
	}
	if got := tensor.Sprint(C); got != "[[3 2] [7 4]]" {
		t.Errorf("C = %s", got)
	}

	D := tensor.Zeros[float64](tensor.Shape{2, 2})
	if err := indicial.Einsum("ik,kj->ij", indicial.Dense(D), indicial.Dense(A), indicial.Dense(B)); err != nil {
		t.Fatal(err)
	}
	if got := tensor.Sprint(D); got != "[[3 2] [7 4]]" {
		t.Errorf("einsum = %s", got)
	}
}

func TestCrossProduct(t *testing.T) {
	u, _ := tensor.FromSlice([]float64{0, 1, 0}, tensor.Shape{3})
	v, _ := tensor.FromSlice([]float64{0, 0, 1}, tensor.Shape{3})
	w := tensor.Zeros[float64](tensor.Shape{3})
	i, j, k := indicial.I, indicial.J, indicial.K

	eps, err := indicial.Of(indicial.LeviCivita[float64](3), i, j, k)
	if err != nil {
		t.Fatal(err)
	}
	cross, err := indicial.Mul(eps, mustOf(t, u, j), mustOf(t, v, k))
	if err != nil {
		t.Fatal(err)
	}
	if err := mustOf(t, w, i).Assign(cross); err != nil {
		t.Fatal(err)
	}
	if got := tensor.Sprint(w); got != "[1 0 0]" {
		t.Errorf("u × v = %s", got)
	}
}

func TestReduceAndFill(t *testing.T) {
	u, _ := tensor.FromSlice([]int64{1, 2, 3}, tensor.Shape{3})
	i, j := indicial.I, indicial.J

	d, err := indicial.Of(indicial.Delta[int64](2), i, j)
	if err != nil {
		t.Fatal(err)
	}
	sq, err := indicial.Mul(d, mustOf(t, u, i), mustOf(t, u, j))
	if err != nil {
		t.Fatal(err)
	}
	got, err := indicial.Reduce(sq)
	if err != nil {
		t.Fatal(err)
	}
	if got.Int64() != 14 {
		t.Errorf("δ(i,j) u(i) u(j) = %v, want 14", got)
	}

	if err := indicial.Fill(mustOf(t, u, indicial.Coord(1)), int64(9)); err != nil {
		t.Fatal(err)
	}
	if got := tensor.Sprint(u); got != "[1 9 3]" {
		t.Errorf("u = %s", got)
	}
}

func TestFunctions(t *testing.T) {
	sqrt, ok := indicial.Function("sqrt")
	if !ok {
		t.Fatal("sqrt is not registered")
	}
	x, _ := tensor.FromSlice([]float64{1, 4, 9}, tensor.Shape{3})
	y := tensor.Zeros[float64](tensor.Shape{3})

	root, err := indicial.Apply(sqrt, mustOf(t, x, indicial.I))
	if err != nil {
		t.Fatal(err)
	}
	if err := indicial.Assign(mustOf(t, y, indicial.I), root); err != nil {
		t.Fatal(err)
	}
	if got := tensor.Sprint(y); got != "[1 2 3]" {
		t.Errorf("sqrt = %s", got)
	}
	if len(indicial.FunctionNames()) == 0 {
		t.Error("no functions registered")
	}
}

func TestErrors(t *testing.T) {
	A := tensor.Zeros[float64](tensor.Shape{2, 3})
	B := tensor.Zeros[float64](tensor.Shape{3, 2})
	i, j := indicial.I, indicial.J

	_, err := indicial.Add(mustOf(t, A, i, j), mustOf(t, B, i, j))
	if !errors.Is(err, indicial.ErrMismatchedFreeIndex) {
		t.Errorf("A(i,j) + B(i,j): got %v, want ErrMismatchedFreeIndex", err)
	}

	_, err = indicial.OfDense(A, i)
	if !errors.Is(err, indicial.ErrRankMismatch) {
		t.Errorf("A(i): got %v, want ErrRankMismatch", err)
	}

	k, err := indicial.Index(indicial.K)
	if err != nil {
		t.Fatal(err)
	}
	if err := indicial.Assign(mustOf(t, A, i, j), k); !errors.Is(err, indicial.ErrUnresolvedContraction) {
		t.Errorf("A(i,j) = k: got %v, want ErrUnresolvedContraction", err)
	}

	if err := indicial.Einsum("ij,jk", indicial.Dense(A), indicial.Dense(A)); !errors.Is(err, indicial.ErrBadEinsum) {
		t.Errorf("einsum with one operand too few: got %v, want ErrBadEinsum", err)
	}
}
