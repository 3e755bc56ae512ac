// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep solver kernels minimal by delegating shape/nil/length checks here.
//  - Return sentinel errors wrapped with a validator tag so call sites can
//    wrap once more with their operation tag and still match via errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
//
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
// Assumes m is not nil (caller must ensure).
// Errors: ErrDimensionMismatch if not square.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Time: O(1). Space: O(1).
func ValidateVecLen(x []float64, n int) error {
	// Disallow nil vectors to avoid subtle bugs in MatVec-like routines.
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects vectors carrying NaN or ±Inf.
// Time: O(n). Space: O(1).
func ValidateFinite(x []float64) error {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf(fmt.Sprintf("ValidateFinite[%d]", i), ErrNaNInf)
		}
	}

	return nil
}

// ValidateSystem is the composite guard for Ax=b entry points.
//
// Sequence: NotNil → Square → VecLen → Finite(b).
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (all wrapped).
// Complexity: O(n).
func ValidateSystem(a Matrix, b []float64) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateSquare(a); err != nil {
		return err
	}
	if err := ValidateVecLen(b, a.Rows()); err != nil {
		return err
	}

	return ValidateFinite(b)
}

// SystemFromRows deep-copies (a, b) into a fresh working pair and validates it.
// This is the single ownership point used by every solver: callers' slices are
// never retained or mutated downstream.
//
// Errors: those of NewDenseFromRows and ValidateSystem.
// Complexity: O(n²).
func SystemFromRows(a [][]float64, b []float64) (*Dense, []float64, error) {
	m, err := NewDenseFromRows(a)
	if err != nil {
		return nil, nil, err
	}
	if err = ValidateSystem(m, b); err != nil {
		return nil, nil, err
	}
	rhs := make([]float64, len(b))
	copy(rhs, b)

	return m, rhs, nil
}
