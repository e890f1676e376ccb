// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package indicial writes tensor computations in Einstein (indicial)
// notation.
//
// # Overview
//
// Subscripting a tensor with index symbols yields an expression. Expressions
// combine with Add, Sub, Mul, Div, Neg and Apply; every combination checks the
// index maps of its operands and returns an error instead of a malformed
// tree. Assigning an expression into a subscripted target loops over the
// target's free indices and sums over every index that is repeated:
//   - A symbol used once and present in the target is free
//   - A symbol repeated in a product is contracted (summed)
//   - A symbol of the target absent from the right-hand side broadcasts
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/einstein/indicial"
//	    "github.com/born-ml/einstein/tensor"
//	)
//
//	func main() {
//	    A, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	    B := tensor.Eye[float64](2)
//	    C := tensor.Zeros[float64](tensor.Shape{2, 2})
//
//	    i, j, k := indicial.I, indicial.J, indicial.K
//	    a, _ := indicial.OfDense(A, i, k)
//	    b, _ := indicial.OfDense(B, k, j)
//	    c, _ := indicial.OfDense(C, i, j)
//
//	    ab, _ := indicial.Mul(a, b)
//	    if err := c.Assign(ab); err != nil { // C(i,j) = A(i,k) * B(k,j)
//	        log.Fatal(err)
//	    }
//	}
//
// # Constant Tensors
//
// Delta and LeviCivita compute their elements on the fly and take the size of
// every dimension from the other operands:
//
//	eps, _ := indicial.Of(indicial.LeviCivita[float64](3), i, j, k)
//	cross, _ := indicial.Mul(eps, u_j, v_k)  // (u × v)(i)
//
// # Errors
//
// Every error wraps one of the exported sentinels and can be tested with
// errors.Is. A single call may report several violations at once.
package indicial
