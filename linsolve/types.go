// SPDX-License-Identifier: MIT

package linsolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/numlab/matrix"
	"github.com/katalvlaran/numlab/trace"
)

// ErrUnknownMethod is returned for a Method value or name outside the closed set.
var ErrUnknownMethod = errors.New("linsolve: unknown method")

// PivotEpsilon is the float64 machine epsilon used by the zero-pivot test:
// a pivot counts as zero when |pivot| <= n · PivotEpsilon · max|A[i][j]| of the
// original n×n matrix. Only round-off residue of an exactly singular system
// falls below it; small but genuine pivots do not.
const PivotEpsilon = 0x1p-52

// Method selects the direct elimination algorithm.
type Method int

const (
	// Gauss is Gaussian elimination with partial pivoting and back substitution.
	Gauss Method = iota

	// GaussJordan reduces A to the identity; the transformed b is the solution.
	GaussJordan

	// LU factorizes PA = LU and solves by forward/back substitution.
	LU
)

// Operation tags for error wrapping.
const (
	opGauss       = "Gauss"
	opGaussJordan = "GaussJordan"
	opLU          = "LU"
	opSolve       = "Solve"
)

// String returns the canonical method name.
func (m Method) String() string {
	switch m {
	case Gauss:
		return "gauss"
	case GaussJordan:
		return "gauss_jordan"
	case LU:
		return "lu"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a method name to a Method. Accepted names (case-insensitive):
// "gauss"; "jordan", "gauss_jordan", "gauss-jordan"; "lu".
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gauss":
		return Gauss, nil
	case "jordan", "gauss_jordan", "gauss-jordan":
		return GaussJordan, nil
	case "lu":
		return LU, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

// Result is the outcome of one direct solve.
//
// On success X holds the solution and Residual = ‖A·X − b‖∞ measured on the
// caller's original system. When the solve aborts on a singular pivot the
// returned Result has X == nil and Trace ends at the failing step.
type Result struct {
	Method   Method
	X        []float64
	L, U     *matrix.Dense // LU only: unit lower and upper triangular factors
	Perm     []int         // LU only: Perm[i] is the original row now at position i
	Residual float64
	Trace    *trace.Trace
}

// Solved reports whether a solution vector is present.
func (r *Result) Solved() bool { return r != nil && r.X != nil }
