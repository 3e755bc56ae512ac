// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package and by the solver packages built on top of it. Algorithms MUST return
// these sentinels (optionally wrapped with %w) and tests MUST check them via
// errors.Is. No exported function panics on user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Downstream packages (linsolve, regression,
// quadrature, growth) wrap these sentinels rather than inventing parallel ones,
// so a single errors.Is(err, matrix.ErrDimensionMismatch) classifies a shape
// problem no matter which engine detected it.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape/dimensions -> NaN/Inf -> singularity.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands:
	// ragged rows, a non-square coefficient matrix, a right-hand side whose length
	// differs from the matrix dimension, or sample arrays of different lengths.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy (ingestion, Set).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrSingular is returned when a pivot is zero after pivoting, i.e. the
	// elimination cannot continue. No partial solution accompanies it.
	ErrSingular = errors.New("matrix: singular matrix")
)
