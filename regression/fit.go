// SPDX-License-Identifier: MIT

package regression

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/numlab/linsolve"
	"github.com/katalvlaran/numlab/matrix"
	"github.com/katalvlaran/numlab/series"
	"github.com/katalvlaran/numlab/trace"
)

// degenerateTol is the relative threshold for the 2×2 determinant:
// |D| ≤ degenerateTol · n·Σx² counts as zero.
const degenerateTol = 1e-12

// Fit dispatches to the model selected by k.
func Fit(x, y []float64, k Kind) (*Result, error) {
	switch k {
	case Linear:
		return LinearFit(x, y)
	case Quadratic:
		return QuadraticFit(x, y)
	case Exponential:
		return ExponentialFit(x, y)
	default:
		return nil, fmt.Errorf("%s: %w: %v", opFit, ErrUnknownKind, k)
	}
}

// FitAll runs every model on the same data. Each Outcome carries its own error.
func FitAll(x, y []float64) []Outcome {
	out := make([]Outcome, len(Kinds))
	for i, k := range Kinds {
		res, err := Fit(x, y, k)
		out[i] = Outcome{Kind: k, Result: res, Err: err}
	}

	return out
}

// LinearFit fits y = a + b·x by Cramer's rule:
//
//	D = n·Σx² − (Σx)²,  a = (Σy·Σx² − Σx·Σxy)/D,  b = (n·Σxy − Σx·Σy)/D
//
// Errors: ErrDimensionMismatch, ErrTooFewPoints (< 2), matrix.ErrNaNInf,
// ErrDegenerate (D ≈ 0).
//
// Complexity: O(n).
func LinearFit(x, y []float64) (*Result, error) {
	if err := validatePoints(x, y, Linear); err != nil {
		return nil, fmt.Errorf("%s: %w", opLinear, err)
	}
	tr := trace.New()
	n := len(x)
	tr.Banner("LINEAR REGRESSION: y = a + bx")
	tr.Addf("Number of points: %d", n)

	s := powerSums(x, y)
	tr.Blank()
	tr.Add("Computed sums:")
	tr.Addf("  Σx = %.4f", s.x)
	tr.Addf("  Σy = %.4f", s.y)
	tr.Addf("  Σx² = %.4f", s.x2)
	tr.Addf("  Σxy = %.4f", s.xy)

	a, b, err := cramer2(float64(n), s.x, s.x2, s.y, s.xy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opLinear, err)
	}

	res := &Result{Kind: Linear, Coefficients: []float64{a, b}, Trace: tr}
	res.Equation = fmt.Sprintf("y = %.6f + %.6fx", a, b)
	tr.Blank()
	tr.Add("Computed coefficients:")
	tr.Addf("  a = %.6f", a)
	tr.Addf("  b = %.6f", b)
	finish(res, x, y)

	return res, nil
}

// QuadraticFit fits y = a + b·x + c·x². The normal equations are built on the
// centered abscissa d = x − x̄,
//
//	| n    Σd   Σd²  | |α|   | Σy   |
//	| Σd   Σd²  Σd³  | |β| = | Σdy  |
//	| Σd²  Σd³  Σd⁴  | |γ|   | Σd²y |
//
// solved with linsolve.GaussElimination, and expanded back to the x basis:
// a = α − β·x̄ + γ·x̄², b = β − 2γ·x̄, c = γ. Centering keeps the system well
// conditioned for large offsets such as calendar years.
//
// Errors: ErrDimensionMismatch, ErrTooFewPoints (< 3), matrix.ErrNaNInf,
// ErrDegenerate (fewer than three distinct x values).
//
// Complexity: O(n).
func QuadraticFit(x, y []float64) (*Result, error) {
	if err := validatePoints(x, y, Quadratic); err != nil {
		return nil, fmt.Errorf("%s: %w", opQuadratic, err)
	}
	tr := trace.New()
	n := len(x)
	tr.Banner("QUADRATIC REGRESSION: y = a + bx + cx²")
	tr.Addf("Number of points: %d", n)

	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)
	d := make([]float64, n)
	for i, v := range x {
		d[i] = v - mean
	}
	tr.Blank()
	tr.Addf("Centering: d = x - x̄, x̄ = %.4f", mean)

	s := powerSums(d, y)
	tr.Blank()
	tr.Add("Computed sums:")
	tr.Addf("  Σd = %.4f", s.x)
	tr.Addf("  Σy = %.4f", s.y)
	tr.Addf("  Σd² = %.4f", s.x2)
	tr.Addf("  Σd³ = %.4f", s.x3)
	tr.Addf("  Σd⁴ = %.4f", s.x4)
	tr.Addf("  Σdy = %.4f", s.xy)
	tr.Addf("  Σd²y = %.4f", s.x2y)

	normal := [][]float64{
		{float64(n), s.x, s.x2},
		{s.x, s.x2, s.x3},
		{s.x2, s.x3, s.x4},
	}
	rhs := []float64{s.y, s.xy, s.x2y}
	tr.Blank()
	tr.Add("Normal equations:")
	tr.Add(linsolve.FormatSystem(normal, rhs))

	sol, err := linsolve.GaussElimination(normal, rhs)
	if errors.Is(err, matrix.ErrSingular) {
		return nil, fmt.Errorf("%s: %w", opQuadratic, errors.Join(ErrDegenerate, err))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opQuadratic, err)
	}

	alpha, beta, gamma := sol.X[0], sol.X[1], sol.X[2]
	a := alpha - beta*mean + gamma*mean*mean
	b := beta - 2*gamma*mean
	c := gamma
	res := &Result{Kind: Quadratic, Coefficients: []float64{a, b, c}, Trace: tr}
	res.Equation = fmt.Sprintf("y = %.6f + %.6fx + %.6fx²", a, b, c)
	tr.Blank()
	tr.Addf("Centered coefficients: α = %.6f, β = %.6f, γ = %.6f", alpha, beta, gamma)
	tr.Add("Computed coefficients:")
	tr.Addf("  a = α - βx̄ + γx̄² = %.6f", a)
	tr.Addf("  b = β - 2γx̄ = %.6f", b)
	tr.Addf("  c = γ = %.6f", c)
	finish(res, x, y)

	return res, nil
}

// ExponentialFit fits y = a·e^(b·x) by a linear fit of z = ln y on x.
// ln and exp come from package series.
//
// Errors: ErrDimensionMismatch, ErrTooFewPoints (< 2), matrix.ErrNaNInf,
// ErrNonPositive (some y ≤ 0), ErrDegenerate.
//
// Complexity: O(n) plus one series evaluation per point.
func ExponentialFit(x, y []float64) (*Result, error) {
	if err := validatePoints(x, y, Exponential); err != nil {
		return nil, fmt.Errorf("%s: %w", opExponential, err)
	}
	n := len(x)
	var i int
	for i = 0; i < n; i++ {
		if y[i] <= 0 {
			return nil, fmt.Errorf("%s: %w: y[%d] = %g", opExponential, ErrNonPositive, i, y[i])
		}
	}

	tr := trace.New()
	tr.Banner("EXPONENTIAL REGRESSION: y = a*e^(bx)")
	tr.Addf("Number of points: %d", n)
	tr.Blank()
	tr.Add("Linearization: ln(y) = ln(a) + bx")

	z := make([]float64, n)
	tr.Blank()
	tr.Add("Transformed values (ln(y)):")
	for i = 0; i < n; i++ {
		z[i] = series.Ln(y[i])
		tr.Addf("  x=%.4f, ln(y)=%.6f", x[i], z[i])
	}

	s := powerSums(x, z)
	tr.Blank()
	tr.Add("Computed sums:")
	tr.Addf("  Σx = %.4f", s.x)
	tr.Addf("  Σln(y) = %.4f", s.y)
	tr.Addf("  Σx² = %.4f", s.x2)
	tr.Addf("  Σx·ln(y) = %.4f", s.xy)

	lnA, b, err := cramer2(float64(n), s.x, s.x2, s.y, s.xy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opExponential, err)
	}
	a := series.Exp(lnA)

	res := &Result{Kind: Exponential, Coefficients: []float64{a, b}, Trace: tr}
	res.Equation = fmt.Sprintf("y = %.6f*e^(%.6fx)", a, b)
	tr.Blank()
	tr.Add("Computed coefficients:")
	tr.Addf("  ln(a) = %.6f", lnA)
	tr.Addf("  a = e^(%.6f) = %.6f", lnA, a)
	tr.Addf("  b = %.6f", b)
	finish(res, x, y)

	return res, nil
}

// sums holds the power sums used by the normal equations.
type sums struct {
	x, x2, x3, x4 float64
	y, xy, x2y    float64
}

func powerSums(x, y []float64) sums {
	var s sums
	var xi, xx float64
	for i := range x {
		xi = x[i]
		xx = xi * xi
		s.x += xi
		s.x2 += xx
		s.x3 += xx * xi
		s.x4 += xx * xx
		s.y += y[i]
		s.xy += xi * y[i]
		s.x2y += xx * y[i]
	}

	return s
}

// cramer2 solves [n Σx; Σx Σx²]·[a b]ᵀ = [Σy Σxy]ᵀ.
func cramer2(n, sx, sx2, sy, sxy float64) (a, b float64, err error) {
	d := n*sx2 - sx*sx
	if math.Abs(d) <= degenerateTol*n*sx2 {
		return 0, 0, ErrDegenerate
	}
	a = (sy*sx2 - sx*sxy) / d
	b = (n*sxy - sx*sy) / d

	return a, b, nil
}

// finish computes SSE in the original scale and closes the trace.
func finish(res *Result, x, y []float64) {
	var sse, r float64
	for i := range x {
		r = y[i] - res.Predict(x[i])
		sse += r * r
	}
	res.SSE = sse
	res.Trace.Blank()
	res.Trace.Addf("Equation: %s", res.Equation)
	res.Trace.Blank()
	res.Trace.Addf("Total squared error: %.6f", sse)
}

func validatePoints(x, y []float64, k Kind) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: len(x)=%d, len(y)=%d", ErrDimensionMismatch, len(x), len(y))
	}
	if len(x) < k.minPoints() {
		return fmt.Errorf("%w: %s needs %d, got %d", ErrTooFewPoints, k, k.minPoints(), len(x))
	}
	if err := matrix.ValidateFinite(x); err != nil {
		return err
	}

	return matrix.ValidateFinite(y)
}
