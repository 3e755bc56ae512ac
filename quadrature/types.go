// SPDX-License-Identifier: MIT

package quadrature

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/numlab/matrix"
	"github.com/katalvlaran/numlab/trace"
)

var (
	// ErrDimensionMismatch is returned when len(x) != len(y).
	ErrDimensionMismatch = fmt.Errorf("quadrature: %w", matrix.ErrDimensionMismatch)

	// ErrTooFewPoints is returned for fewer than 2 samples (3 for Simpson).
	ErrTooFewPoints = fmt.Errorf("quadrature: too few points: %w", matrix.ErrDimensionMismatch)

	// ErrUnknownMethod is returned for a Method value or name outside the closed set.
	ErrUnknownMethod = errors.New("quadrature: unknown method")
)

// UniformTol is the absolute tolerance for treating spacing as uniform.
const UniformTol = 1e-10

// Method selects the integration rule.
type Method int

const (
	// Trapezoid is the composite trapezoid rule.
	Trapezoid Method = iota

	// Simpson is repeated Simpson 1/3 (even interval count only).
	Simpson

	// Hybrid is Simpson 1/3 with a trapezoid on the last interval when the
	// interval count is odd.
	Hybrid
)

// Mode reports how a Result's area was assembled.
type Mode string

const (
	ModeTrapezoid        Mode = "trapezoid"
	ModeSimpson          Mode = "simpson_full"
	ModeSimpsonTrapezoid Mode = "simpson_trapezoid"
)

const (
	opTrapezoid = "Trapezoid"
	opSimpson   = "Simpson"
	opHybrid    = "Hybrid"
	opIntegrate = "Integrate"
)

// String returns the canonical method name.
func (m Method) String() string {
	switch m {
	case Trapezoid:
		return "trapezoid"
	case Simpson:
		return "simpson13"
	case Hybrid:
		return "hybrid"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a user-facing name to a Method, case-insensitively:
// "trapezoid"/"trapezio" → Trapezoid; "simpson13" → Simpson;
// "simpson", "hybrid", "simpson-hybrid", "simpson_hybrid" → Hybrid.
//
// Plain "simpson" selects Hybrid because callers asking for Simpson expect an
// area for any interval count.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trapezoid", "trapezio":
		return Trapezoid, nil
	case "simpson13":
		return Simpson, nil
	case "simpson", "hybrid", "simpson-hybrid", "simpson_hybrid":
		return Hybrid, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

// Result is the outcome of one integration.
//
// Area is meaningful only when Applicable is true. Step is the common spacing
// when Uniform, 0 otherwise. SimpsonArea and TrapezoidArea split a Hybrid
// area into its two parts (one of them is zero when unused).
type Result struct {
	Method        Method
	Mode          Mode
	Area          float64
	Applicable    bool
	Intervals     int
	Uniform       bool
	Step          float64
	SimpsonArea   float64
	TrapezoidArea float64
	Trace         *trace.Trace
}

// Outcome is one slot of an IntegrateAll batch.
type Outcome struct {
	Method Method
	Result *Result
	Err    error
}
