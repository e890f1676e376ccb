// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense, row-major, generically typed tensors for
// indicial-notation expressions.
//
// # Overview
//
// A Dense[T] owns a flat slice of T and a shape. It is the storage that
// package indicial reads from and assigns to:
//   - Generic type-safe tensors (Dense[T])
//   - Runtime element values (Value) with the promotion rules used by expressions
//   - Bracketed text output (Format, Sprint)
//
// # Basic Usage
//
//	import "github.com/born-ml/einstein/tensor"
//
//	func main() {
//	    a, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	    id := tensor.Eye[float64](2)
//
//	    fmt.Println(tensor.Sprint(a))  // [[1 2] [3 4]]
//	    fmt.Println(id.At(1, 1))       // 1
//	}
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType constraint:
//   - float32, float64 (floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (unsigned integers)
//   - bool (boolean masks)
//
// # Element Types in Expressions
//
// Mixing element types follows fixed rules:
//   - Promote: the wider of two numeric types; any float beats any integer
//   - Quotient: like Promote, but integer / integer yields float64
//   - Negate: rejects bool and uint8
//   - AssignableTo: a float result is never stored into an integer tensor
//
// Violations are reported as ErrIncompatibleElementType.
package tensor
