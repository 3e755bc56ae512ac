// SPDX-License-Identifier: MIT

package quadrature

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/numlab/matrix"
	"github.com/katalvlaran/numlab/trace"
)

// Integrate dispatches to the rule selected by m.
func Integrate(x, y []float64, m Method) (*Result, error) {
	switch m {
	case Trapezoid:
		return TrapezoidRule(x, y)
	case Simpson:
		return SimpsonRule(x, y)
	case Hybrid:
		return HybridRule(x, y)
	default:
		return nil, fmt.Errorf("%s: %w: %v", opIntegrate, ErrUnknownMethod, m)
	}
}

// IntegrateAll runs Trapezoid and Hybrid on the same samples.
func IntegrateAll(x, y []float64) []Outcome {
	methods := []Method{Trapezoid, Hybrid}
	out := make([]Outcome, len(methods))
	for i, m := range methods {
		res, err := Integrate(x, y, m)
		out[i] = Outcome{Method: m, Result: res, Err: err}
	}

	return out
}

// TrapezoidRule integrates with the composite trapezoid rule.
//
// Errors: ErrDimensionMismatch, ErrTooFewPoints (< 2), matrix.ErrNaNInf.
// Complexity: O(n).
func TrapezoidRule(x, y []float64) (*Result, error) {
	if err := validateSamples(x, y, 2); err != nil {
		return nil, fmt.Errorf("%s: %w", opTrapezoid, err)
	}
	tr := trace.New()
	res := newResult(Trapezoid, ModeTrapezoid, x, tr)
	tr.Banner("TRAPEZOID RULE")
	tr.Addf("Number of intervals (n): %d", res.Intervals)
	traceSetup(tr, x, y, res)
	tr.Blank()
	tr.Add("Formula: A = Σ (h[i]/2) * (y[i] + y[i+1])")

	res.Area = trapezoidSum(x, y, tr)
	res.TrapezoidArea = res.Area
	traceTotal(tr, "TOTAL AREA (Trapezoid)", res.Area)

	return res, nil
}

// SimpsonRule integrates with repeated Simpson 1/3. An odd interval count
// yields Applicable == false and a nil error.
//
// Errors: ErrDimensionMismatch, ErrTooFewPoints (< 3), matrix.ErrNaNInf.
// Complexity: O(n).
func SimpsonRule(x, y []float64) (*Result, error) {
	if err := validateSamples(x, y, 3); err != nil {
		return nil, fmt.Errorf("%s: %w", opSimpson, err)
	}
	tr := trace.New()
	res := newResult(Simpson, ModeSimpson, x, tr)
	tr.Banner("REPEATED SIMPSON 1/3 RULE")
	tr.Addf("Number of intervals (n): %d", res.Intervals)

	if res.Intervals%2 == 1 {
		res.Applicable = false
		tr.Blank()
		tr.Addf("WARNING: the number of intervals (%d) is ODD!", res.Intervals)
		tr.Add("Repeated Simpson 1/3 requires an EVEN number of intervals.")
		tr.Add("This method will NOT be applied.")

		return res, nil
	}

	traceSetup(tr, x, y, res)
	res.Area = simpsonSum(x, y, res.Uniform, tr)
	res.SimpsonArea = res.Area
	traceTotal(tr, "TOTAL AREA (Simpson 1/3)", res.Area)

	return res, nil
}

// HybridRule integrates with Simpson 1/3 on an even interval count, or
// Simpson on the first n−1 intervals plus a trapezoid on the last one when
// n is odd. A single interval is a plain trapezoid.
//
// Errors: ErrDimensionMismatch, ErrTooFewPoints (< 2), matrix.ErrNaNInf.
// Complexity: O(n).
func HybridRule(x, y []float64) (*Result, error) {
	if err := validateSamples(x, y, 2); err != nil {
		return nil, fmt.Errorf("%s: %w", opHybrid, err)
	}
	tr := trace.New()
	res := newResult(Hybrid, ModeSimpson, x, tr)
	n := res.Intervals
	tr.Banner("SIMPSON 1/3 + TRAPEZOID (HYBRID)")
	tr.Addf("Number of intervals (n): %d", n)
	traceSetup(tr, x, y, res)

	switch {
	case n == 1:
		res.Mode = ModeTrapezoid
		tr.Blank()
		tr.Add("Single interval: applying the trapezoid rule")
		res.TrapezoidArea = trapezoidSum(x, y, tr)
		res.Area = res.TrapezoidArea

	case n%2 == 0:
		tr.Blank()
		tr.Addf("Number of intervals is EVEN (%d)", n)
		tr.Add("Applying repeated Simpson 1/3 over the whole domain")
		res.SimpsonArea = simpsonSum(x, y, res.Uniform, tr)
		res.Area = res.SimpsonArea

	default:
		res.Mode = ModeSimpsonTrapezoid
		tr.Blank()
		tr.Addf("Number of intervals is ODD (%d)", n)
		tr.Add("Applying Simpson 1/3 on the first (n-1) intervals")
		tr.Add("Applying the trapezoid rule on the last interval")

		tr.Section(fmt.Sprintf("Part 1: Simpson 1/3 (first %d intervals)", n-1))
		res.SimpsonArea = simpsonSum(x[:n], y[:n], isUniform(steps(x[:n])), tr)

		tr.Section("Part 2: Trapezoid (last interval)")
		h := x[n] - x[n-1]
		res.TrapezoidArea = h / 2 * (y[n-1] + y[n])
		tr.Addf("h = %g - %g = %g", x[n], x[n-1], h)
		tr.Addf("A_trapezoid = (%g/2) * (%g + %g) = %g", h, y[n-1], y[n], res.TrapezoidArea)

		res.Area = res.SimpsonArea + res.TrapezoidArea
		tr.Blank()
		tr.Add(trace.Separator)
		tr.Addf("AREA PART 1 (Simpson) = %g", res.SimpsonArea)
		tr.Addf("AREA PART 2 (Trapezoid) = %g", res.TrapezoidArea)
		tr.Addf("TOTAL AREA = %g + %g = %g", res.SimpsonArea, res.TrapezoidArea, res.Area)
		tr.Add(trace.Separator)

		return res, nil
	}
	traceTotal(tr, "TOTAL AREA (Hybrid)", res.Area)

	return res, nil
}

// trapezoidSum adds one trapezoid per interval.
func trapezoidSum(x, y []float64, tr *trace.Trace) float64 {
	var area, h, part float64
	for i := 0; i+1 < len(x); i++ {
		h = x[i+1] - x[i]
		part = h / 2 * (y[i] + y[i+1])
		area += part
		tr.Addf("  Trapezoid %d: (%g/2) * (%g + %g) = %g", i, h, y[i], y[i+1], part)
	}

	return area
}

// simpsonSum applies Simpson 1/3 over an even number of intervals. Uniform
// spacing uses the classic weights; otherwise each two-interval panel uses
// the non-uniform three-point formula.
func simpsonSum(x, y []float64, uniform bool, tr *trace.Trace) float64 {
	n := len(x) - 1
	var i int
	if uniform {
		h := x[1] - x[0]
		tr.Blank()
		tr.Add("Formula: A = (h/3) * (y[0] + 4*Σy_odd + 2*Σy_even + y[n])")

		odd, even := make([]string, 0, n/2), make([]string, 0, n/2)
		var oddSum, evenSum float64
		for i = 1; i < n; i += 2 {
			oddSum += y[i]
			odd = append(odd, fmt.Sprintf("y[%d](%g)", i, y[i]))
		}
		for i = 2; i < n; i += 2 {
			evenSum += y[i]
			even = append(even, fmt.Sprintf("y[%d](%g)", i, y[i]))
		}
		tr.Addf("Σy[odd] = %s = %g", joinOrZero(odd), oddSum)
		tr.Addf("Σy[even] = %s = %g", joinOrZero(even), evenSum)

		area := h / 3 * (y[0] + 4*oddSum + 2*evenSum + y[n])
		tr.Addf("A = (%g/3) * (%g + 4*%g + 2*%g + %g) = %g", h, y[0], oddSum, evenSum, y[n], area)

		return area
	}

	tr.Blank()
	tr.Add("Non-uniform spacing: Simpson 1/3 applied panel by panel")
	var area, h1, h2, part float64
	for i = 0; i+2 <= n; i += 2 {
		h1, h2 = x[i+1]-x[i], x[i+2]-x[i+1]
		part = (h1 + h2) / 6 * ((2-h2/h1)*y[i] +
			(h1+h2)*(h1+h2)/(h1*h2)*y[i+1] +
			(2-h1/h2)*y[i+2])
		area += part
		tr.Addf("  Panel [x[%d], x[%d]]: h1=%g, h2=%g, A=%g", i, i+2, h1, h2, part)
	}

	return area
}

func newResult(m Method, mode Mode, x []float64, tr *trace.Trace) *Result {
	h := steps(x)
	res := &Result{
		Method:     m,
		Mode:       mode,
		Applicable: true,
		Intervals:  len(h),
		Uniform:    isUniform(h),
		Trace:      tr,
	}
	if res.Uniform {
		res.Step = h[0]
	}

	return res
}

// traceSetup records the spacings and the sample points.
func traceSetup(tr *trace.Trace, x, y []float64, res *Result) {
	tr.Add("Spacings (h):")
	for i := 0; i < res.Intervals; i++ {
		tr.Addf("  h[%d] = x[%d] - x[%d] = %g - %g = %g", i, i+1, i, x[i+1], x[i], x[i+1]-x[i])
	}
	tr.Blank()
	if res.Uniform {
		tr.Addf("Uniform spacing: h = %g", res.Step)
	} else {
		tr.Add("Non-uniform spacing detected")
	}
	tr.Blank()
	tr.Add("Integration points:")
	for i := range x {
		tr.Addf("  x[%d] = %g, y[%d] = %g", i, x[i], i, y[i])
	}
}

func traceTotal(tr *trace.Trace, label string, area float64) {
	tr.Blank()
	tr.Add(trace.Separator)
	tr.Addf("%s = %g", label, area)
	tr.Add(trace.Separator)
}

func steps(x []float64) []float64 {
	h := make([]float64, len(x)-1)
	for i := range h {
		h[i] = x[i+1] - x[i]
	}

	return h
}

func isUniform(h []float64) bool {
	for _, v := range h {
		if math.Abs(v-h[0]) >= UniformTol {
			return false
		}
	}

	return true
}

func joinOrZero(terms []string) string {
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

func validateSamples(x, y []float64, minPoints int) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: len(x)=%d, len(y)=%d", ErrDimensionMismatch, len(x), len(y))
	}
	if len(x) < minPoints {
		return fmt.Errorf("%w: need %d, got %d", ErrTooFewPoints, minPoints, len(x))
	}
	if err := matrix.ValidateFinite(x); err != nil {
		return err
	}

	return matrix.ValidateFinite(y)
}
