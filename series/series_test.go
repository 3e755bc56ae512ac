package series_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/numlab/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownValues(t *testing.T) {
	assert.InDelta(t, 2.302585093, series.Ln(10), 1e-8)
	assert.InDelta(t, 2.718281828, series.Exp(1), 1e-8)
	assert.Equal(t, 0.0, series.Ln(1))
	assert.Equal(t, 1.0, series.Exp(0))
	assert.InDelta(t, 0.6931471805599453, series.Ln(2), 1e-15)
}

func TestLn_NonPositiveIsNaN(t *testing.T) {
	for _, x := range []float64{0, -1, -1e-300, math.Inf(-1), math.NaN()} {
		assert.True(t, math.IsNaN(series.Ln(x)), "Ln(%v)", x)
		assert.True(t, math.IsNaN(series.LnSeries(x)), "LnSeries(%v)", x)
		assert.True(t, math.IsNaN(series.Log10(x)), "Log10(%v)", x)
	}
}

func TestSpecialCases(t *testing.T) {
	assert.True(t, math.IsInf(series.Ln(math.Inf(1)), 1))
	assert.True(t, math.IsNaN(series.Exp(math.NaN())))
	assert.True(t, math.IsInf(series.Exp(math.Inf(1)), 1))
	assert.Equal(t, 0.0, series.Exp(math.Inf(-1)))
	assert.True(t, math.IsInf(series.Exp(1000), 1))
	assert.Equal(t, 0.0, series.Exp(-1000))
}

// TestRoundTrip checks ln(exp(x)) ≈ x and exp(ln(x)) ≈ x on [0.01, 100].
func TestRoundTrip(t *testing.T) {
	const tol = 1e-9
	var x float64
	for x = 0.01; x <= 100; x *= 1.07 {
		require.InDelta(t, x, series.Ln(series.Exp(x)), tol, "ln(exp(%v))", x)
		require.InDelta(t, x, series.Exp(series.Ln(x)), tol, "exp(ln(%v))", x)
	}
}

// TestAgainstMath compares against the standard library as an oracle.
func TestAgainstMath(t *testing.T) {
	for _, x := range []float64{1e-6, 0.3, 0.5, 0.999, 1.5, 7, 123.456, 1e10, 1e-200, 1e300} {
		assert.InEpsilon(t, math.Log(x), series.Ln(x), 1e-12, "Ln(%v)", x)
	}
	for _, x := range []float64{-30, -4.6, -0.5, 0.25, 3, 20, 100, 700} {
		assert.InEpsilon(t, math.Exp(x), series.Exp(x), 1e-12, "Exp(%v)", x)
	}
}

func TestLog10Pow10(t *testing.T) {
	assert.InDelta(t, 6.0, series.Log10(1e6), 1e-12)
	assert.InDelta(t, 3.361727836, series.Log10(2300), 1e-9)
	assert.InEpsilon(t, 1e6, series.Pow10(6), 1e-12)
	assert.InEpsilon(t, 2300.0, series.Pow10(series.Log10(2300)), 1e-12)
}

// TestRawSeriesDriftFarFromOne documents why Ln reduces its argument first.
func TestRawSeriesDriftFarFromOne(t *testing.T) {
	assert.InDelta(t, math.Log(1.2), series.LnSeries(1.2), 1e-15)
	assert.Greater(t, math.Abs(series.LnSeries(100)-math.Log(100)), 1e-3)
	assert.InDelta(t, math.Exp(2), series.ExpSeries(2), 1e-12)
}
