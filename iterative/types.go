// SPDX-License-Identifier: MIT

package iterative

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/numlab/trace"
)

var (
	// ErrUnknownMethod is returned for a Method value or name outside the closed set.
	ErrUnknownMethod = errors.New("iterative: unknown method")

	// ErrZeroDiagonal is returned when A[i][i] == 0 for some i.
	ErrZeroDiagonal = errors.New("iterative: zero diagonal entry")

	// ErrBadTolerance is returned for a tolerance that is not a positive finite number.
	ErrBadTolerance = errors.New("iterative: tolerance must be positive and finite")

	// ErrBadMaxIterations is returned for MaxIterations < 1.
	ErrBadMaxIterations = errors.New("iterative: max iterations must be at least 1")
)

// Defaults used by DefaultOptions.
const (
	DefaultTolerance     = 1e-4
	DefaultMaxIterations = 1000
)

// Method selects the sweep rule.
type Method int

const (
	// Jacobi uses only the previous sweep's values.
	Jacobi Method = iota

	// GaussSeidel uses values already updated in the current sweep.
	GaussSeidel
)

const (
	opJacobi      = "Jacobi"
	opGaussSeidel = "GaussSeidel"
	opSolve       = "Solve"
)

// String returns the canonical method name.
func (m Method) String() string {
	switch m {
	case Jacobi:
		return "jacobi"
	case GaussSeidel:
		return "gauss_seidel"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps "jacobi" or "gauss_seidel" ("gauss-seidel", "seidel") to a
// Method, case-insensitively.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jacobi":
		return Jacobi, nil
	case "gauss_seidel", "gauss-seidel", "seidel":
		return GaussSeidel, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

// Options configures an iterative solve.
//   - Tolerance: stop when the max relative change falls below it (default 1e-4).
//   - MaxIterations: sweep cap (default 1000).
//   - Initial: starting vector x0; nil means the zero vector. Copied, never mutated.
//   - TraceSweeps: number of leading sweeps kept in History and Trace; later
//     sweeps still run but are summarized. 0 keeps every sweep.
//   - Ctx: optional; checked between sweeps. nil means no cancellation.
type Options struct {
	Tolerance     float64
	MaxIterations int
	Initial       []float64
	TraceSweeps   int
	Ctx           context.Context
}

// DefaultOptions returns Tolerance 1e-4, MaxIterations 1000 and a zero x0.
func DefaultOptions() Options {
	return Options{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// Result is the outcome of an iterative solve.
//
// X is always the last computed estimate. Converged distinguishes a tolerance
// stop from hitting the cap; in the latter case Iterations == MaxIterations.
// History[k] is the state vector after sweep k+1, for the recorded sweeps.
type Result struct {
	Method       Method
	X            []float64
	Iterations   int
	Converged    bool
	MaxRelChange float64 // of the last sweep
	History      [][]float64
	Trace        *trace.Trace
}
