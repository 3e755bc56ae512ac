// SPDX-License-Identifier: MIT

package iterative

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/numlab/matrix"
	"github.com/katalvlaran/numlab/trace"
)

// Solve dispatches to Jacobi or GaussSeidel.
func Solve(a [][]float64, b []float64, m Method, opts Options) (*Result, error) {
	switch m {
	case Jacobi:
		return JacobiSolve(a, b, opts)
	case GaussSeidel:
		return GaussSeidelSolve(a, b, opts)
	default:
		return nil, fmt.Errorf("%s: %w: %v", opSolve, ErrUnknownMethod, m)
	}
}

// JacobiSolve runs Jacobi sweeps until the max relative change drops below
// opts.Tolerance or opts.MaxIterations sweeps complete.
//
// Errors:
//   - matrix.ErrDimensionMismatch, matrix.ErrInvalidDimensions, matrix.ErrNaNInf
//     for a malformed system or x0.
//   - ErrZeroDiagonal, ErrBadTolerance, ErrBadMaxIterations.
//   - opts.Ctx.Err() if the context is done between sweeps (partial Result returned).
//
// Complexity: O(n²) per sweep; History and Trace hold O(n·min(iterations,
// opts.TraceSweeps)) values.
func JacobiSolve(a [][]float64, b []float64, opts Options) (*Result, error) {
	return run(a, b, Jacobi, opts)
}

// GaussSeidelSolve is JacobiSolve with in-sweep reuse of updated components.
// Errors and complexity as JacobiSolve.
func GaussSeidelSolve(a [][]float64, b []float64, opts Options) (*Result, error) {
	return run(a, b, GaussSeidel, opts)
}

func run(a [][]float64, b []float64, m Method, opts Options) (*Result, error) {
	op := opJacobi
	if m == GaussSeidel {
		op = opGaussSeidel
	}

	w, rhs, x, err := prepare(a, b, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	n := len(rhs)
	tr := trace.New()
	res := &Result{Method: m, Trace: tr}
	tr.Banner(strings.ToUpper(methodTitle(m)) + " METHOD")
	tr.Addf("Tolerance: %g", opts.Tolerance)
	tr.Addf("Initial estimate: %s", formatVec(x, "%.6f"))
	tr.Blank()

	xOld := make([]float64, n)
	xNew := make([]float64, n)
	var i, j, k int
	var sum, rel float64
	var record bool
	for k = 0; k < opts.MaxIterations; k++ {
		if err = ctx.Err(); err != nil {
			res.X = x
			return res, fmt.Errorf("%s: %w", op, err)
		}
		copy(xOld, x)
		record = opts.TraceSweeps <= 0 || k < opts.TraceSweeps
		if record {
			tr.Addf("--- Iteration %d ---", k+1)
		} else if k == opts.TraceSweeps {
			tr.Addf("... sweeps after %d are not recorded", k)
			tr.Blank()
		}

		for i = 0; i < n; i++ {
			row := w.RawRowView(i)
			sum = matrix.ZeroSum
			for j = 0; j < n; j++ {
				if j == i {
					continue
				}
				if m == GaussSeidel && j < i {
					sum += row[j] * xNew[j]
				} else {
					sum += row[j] * xOld[j]
				}
			}
			xNew[i] = (rhs[i] - sum) / row[i]
			if record {
				tr.Addf("  x[%d] = %.8f", i+1, xNew[i])
			}
		}
		copy(x, xNew)

		rel = maxRelChange(x, xOld)
		res.MaxRelChange = rel
		res.Iterations = k + 1
		if record {
			res.History = append(res.History, append([]float64(nil), x...))
			tr.Addf("  Max relative error: %.8f", rel)
			tr.Blank()
		}

		if rel < opts.Tolerance {
			res.Converged = true
			res.X = x
			tr.Banner("CONVERGENCE REACHED")
			tr.Addf("Iterations: %d", k+1)
			if !record {
				tr.Addf("Max relative error: %.8f", rel)
			}
			tr.Blank()
			tr.Add("Final solution:")
			for i = 0; i < n; i++ {
				tr.Addf("  x[%d] = %.8f", i+1, x[i])
			}

			return res, nil
		}
	}

	res.X = x
	tr.Blank()
	tr.Addf("WARNING: maximum number of iterations (%d) reached!", opts.MaxIterations)
	if !record {
		tr.Addf("Last estimate: %s", formatVec(x, "%.8f"))
		tr.Addf("Max relative error: %.8f", rel)
	}

	return res, nil
}

// prepare copies the system, validates options and returns the starting vector.
func prepare(a [][]float64, b []float64, opts Options) (*matrix.Dense, []float64, []float64, error) {
	if !(opts.Tolerance > 0) || math.IsInf(opts.Tolerance, 1) {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrBadTolerance, opts.Tolerance)
	}
	if opts.MaxIterations < 1 {
		return nil, nil, nil, fmt.Errorf("%w: %d", ErrBadMaxIterations, opts.MaxIterations)
	}
	w, rhs, err := matrix.SystemFromRows(a, b)
	if err != nil {
		return nil, nil, nil, err
	}
	n := len(rhs)

	x := make([]float64, n)
	if opts.Initial != nil {
		if err = matrix.ValidateVecLen(opts.Initial, n); err != nil {
			return nil, nil, nil, fmt.Errorf("initial estimate: %w", err)
		}
		if err = matrix.ValidateFinite(opts.Initial); err != nil {
			return nil, nil, nil, fmt.Errorf("initial estimate: %w", err)
		}
		copy(x, opts.Initial)
	}

	var i int
	for i = 0; i < n; i++ {
		if w.RawRowView(i)[i] == 0 {
			return nil, nil, nil, fmt.Errorf("%w: A[%d][%d]", ErrZeroDiagonal, i+1, i+1)
		}
	}

	return w, rhs, x, nil
}

// maxRelChange returns max |x[i]−old[i]| / |x[i]| over the non-zero x[i].
// An overflowed component yields +Inf so the run never reports convergence.
func maxRelChange(x, old []float64) float64 {
	var worst, r float64
	for i := range x {
		if x[i] == 0 {
			continue
		}
		r = math.Abs((x[i] - old[i]) / x[i])
		if math.IsNaN(r) {
			return math.Inf(1)
		}
		if r > worst {
			worst = r
		}
	}

	return worst
}

func methodTitle(m Method) string {
	if m == GaussSeidel {
		return "Gauss-Seidel"
	}
	return "Jacobi"
}

func formatVec(v []float64, verb string) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf(verb, x)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
