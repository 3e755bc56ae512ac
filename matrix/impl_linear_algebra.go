// SPDX-License-Identifier: MIT
// Package matrix provides the small set of linear-algebra kernels the solver
// packages need on top of Dense: matrix-vector product, infinity norm and the
// residual check ‖A·x − b‖∞ used to certify direct solutions.
//
// Notes:
//   - All kernels use the central validators and return sentinels wrapped via
//     matrixErrorf so callers can match them with errors.Is.

package matrix

import (
	"fmt"
	"math"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMatVec   = "MatVec"
	opResidual = "ResidualInf"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Fast-path: *Dense performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	// Fast-path: *Dense allows flat, row-major dot-products.
	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc, xv float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				xv = x[j]
				if xv != 0 { // skip zero multiplications
					acc += d.data[base+j] * xv
				}
			}
			y[i] = acc
		}

		return y, nil
	}

	// Fallback: interface-based dot-products via At.
	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		y[i] = ZeroSum
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// NormInf returns max_i |v[i]|, or NormZero for an empty vector.
// Complexity: O(n).
func NormInf(v []float64) float64 {
	n := NormZero
	for _, x := range v {
		if a := math.Abs(x); a > n {
			n = a
		}
	}

	return n
}

// ResidualInf computes ‖A·x − b‖∞ for a candidate solution x.
//
// Implementation:
//   - Stage 1: ValidateSystem(a, b) and ValidateVecLen(x, n).
//   - Stage 2: y := MatVec(a, x); return max_i |y[i] − b[i]|.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (wrapped with opResidual).
//
// Complexity:
//   - Time O(n²), Space O(n).
func ResidualInf(a Matrix, x, b []float64) (float64, error) {
	if err := ValidateSystem(a, b); err != nil {
		return 0, matrixErrorf(opResidual, err)
	}
	if err := ValidateVecLen(x, a.Cols()); err != nil {
		return 0, matrixErrorf(opResidual, err)
	}
	y, err := MatVec(a, x)
	if err != nil {
		return 0, matrixErrorf(opResidual, err)
	}
	var i int
	for i = range y {
		y[i] -= b[i]
	}

	return NormInf(y), nil
}
