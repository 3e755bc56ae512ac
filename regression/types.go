// SPDX-License-Identifier: MIT

package regression

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/numlab/matrix"
	"github.com/katalvlaran/numlab/series"
	"github.com/katalvlaran/numlab/trace"
)

var (
	// ErrDimensionMismatch is returned when len(x) != len(y).
	ErrDimensionMismatch = fmt.Errorf("regression: %w", matrix.ErrDimensionMismatch)

	// ErrTooFewPoints is returned when a model gets fewer samples than it has
	// coefficients. It is a dimension error.
	ErrTooFewPoints = fmt.Errorf("regression: too few points: %w", matrix.ErrDimensionMismatch)

	// ErrDegenerate is returned when the normal equations are singular, e.g.
	// when every x value is identical.
	ErrDegenerate = fmt.Errorf("regression: degenerate x values: %w", matrix.ErrSingular)

	// ErrNonPositive is returned when a logarithm of a y value ≤ 0 is required.
	ErrNonPositive = errors.New("regression: non-positive value")

	// ErrUnknownKind is returned for a Kind value or name outside the closed set.
	ErrUnknownKind = errors.New("regression: unknown model kind")
)

// Kind selects the fitted model.
type Kind int

const (
	// Linear fits y = a + b·x.
	Linear Kind = iota

	// Quadratic fits y = a + b·x + c·x².
	Quadratic

	// Exponential fits y = a·e^(b·x).
	Exponential
)

// Kinds lists every model in reporting order.
var Kinds = []Kind{Linear, Quadratic, Exponential}

const (
	opLinear      = "Linear"
	opQuadratic   = "Quadratic"
	opExponential = "Exponential"
	opFit         = "Fit"
)

// minPoints returns the minimum sample count for k.
func (k Kind) minPoints() int {
	if k == Quadratic {
		return 3
	}
	return 2
}

// String returns the canonical model name.
func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	case Exponential:
		return "exponential"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps "linear", "quadratic" ("parabolic") or "exponential" to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return Linear, nil
	case "quadratic", "parabolic":
		return Quadratic, nil
	case "exponential":
		return Exponential, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// Result is a fitted model.
//
// Coefficients is [a, b] for Linear and Exponential, [a, b, c] for Quadratic.
// SSE is the sum of squared residuals in the original y scale.
type Result struct {
	Kind         Kind
	Coefficients []float64
	SSE          float64
	Equation     string
	Trace        *trace.Trace
}

// Predict evaluates the fitted model at x.
func (r *Result) Predict(x float64) float64 {
	c := r.Coefficients
	switch r.Kind {
	case Quadratic:
		return c[0] + c[1]*x + c[2]*x*x
	case Exponential:
		return c[0] * series.Exp(c[1]*x)
	default:
		return c[0] + c[1]*x
	}
}

// Outcome is one slot of a FitAll batch: either Result or Err is set.
type Outcome struct {
	Kind   Kind
	Result *Result
	Err    error
}
