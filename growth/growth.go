// SPDX-License-Identifier: MIT

package growth

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/numlab/matrix"
	"github.com/katalvlaran/numlab/regression"
	"github.com/katalvlaran/numlab/series"
	"github.com/katalvlaran/numlab/trace"
)

var (
	// ErrNonPositive is returned when an observation is ≤ 0.
	ErrNonPositive = fmt.Errorf("growth: %w", regression.ErrNonPositive)

	// ErrDimensionMismatch is returned when len(x) != len(values).
	ErrDimensionMismatch = fmt.Errorf("growth: %w", regression.ErrDimensionMismatch)
)

// Prediction is the trend evaluated at X.
type Prediction struct {
	X        float64
	LogValue float64 // a + b·X
	Value    float64 // 10^LogValue
}

// Result is a fitted growth trend.
//
// SSE is measured on the log₁₀ scale. DoublingTime is log₁₀(2)/B for B > 0
// and 0 for a flat or shrinking trend.
type Result struct {
	A, B         float64
	SSE          float64
	Equation     string
	DoublingTime float64
	Predictions  []Prediction
	Trace        *trace.Trace
}

// Fit fits log₁₀(values) = a + b·x and evaluates the trend at predictAt.
//
// Errors:
//   - ErrDimensionMismatch, matrix.ErrNaNInf, ErrNonPositive.
//   - regression errors for too few points or identical x values.
//
// Complexity: O(len(x) + len(predictAt)).
func Fit(x, values, predictAt []float64) (*Result, error) {
	if len(x) != len(values) {
		return nil, fmt.Errorf("%w: len(x)=%d, len(values)=%d", ErrDimensionMismatch, len(x), len(values))
	}
	if err := matrix.ValidateFinite(values); err != nil {
		return nil, fmt.Errorf("growth: %w", err)
	}
	n := len(x)
	logs := make([]float64, n)
	var i int
	for i = 0; i < n; i++ {
		if values[i] <= 0 {
			return nil, fmt.Errorf("%w: values[%d] = %g", ErrNonPositive, i, values[i])
		}
		logs[i] = series.Log10(values[i])
	}

	lin, err := regression.LinearFit(x, logs)
	if err != nil {
		return nil, fmt.Errorf("growth: %w", err)
	}

	tr := trace.New()
	tr.Banner("GROWTH MODEL - LOGARITHMIC REGRESSION")
	tr.Addf("Number of data points: %d", n)
	tr.Blank()
	tr.Add("Original data:")
	for i = 0; i < n; i++ {
		tr.Addf("  x: %g, N: %g", x[i], values[i])
	}
	tr.Blank()
	tr.Add("Transformed data (log₁₀):")
	for i = 0; i < n; i++ {
		tr.Addf("  x: %g, log₁₀(N): %.6f", x[i], logs[i])
	}

	a, b := lin.Coefficients[0], lin.Coefficients[1]
	res := &Result{
		A:        a,
		B:        b,
		SSE:      lin.SSE,
		Equation: fmt.Sprintf("log₁₀(N) = %.6f + %.6f*x", a, b),
		Trace:    tr,
	}
	tr.Blank()
	tr.Add("Linear regression: log₁₀(N) = a + b*x")
	tr.Addf("  a = %.6f", a)
	tr.Addf("  b = %.6f", b)
	tr.Addf("  Squared error: %.6f", lin.SSE)
	if b > 0 {
		res.DoublingTime = series.Log10(2) / b
		tr.Addf("  Doubling time: log₁₀(2)/b = %.6f", res.DoublingTime)
	}

	if len(predictAt) > 0 {
		tr.Blank()
		tr.Banner("PREDICTIONS")
	}
	res.Predictions = make([]Prediction, len(predictAt))
	for i, px := range predictAt {
		p := Prediction{X: px, LogValue: a + b*px}
		p.Value = series.Pow10(p.LogValue)
		res.Predictions[i] = p

		tr.Blank()
		tr.Addf("x = %g:", px)
		tr.Addf("  log₁₀(N) = %.6f + %.6f*%g = %.6f", a, b, px, p.LogValue)
		tr.Addf("  N = 10^%.6f = %.2e", p.LogValue, p.Value)
		if math.IsInf(p.Value, 0) {
			tr.Add("  N overflows float64")
			continue
		}
		tr.Addf("  N ≈ %s", humanize.Commaf(math.Round(p.Value)))
	}

	return res, nil
}
