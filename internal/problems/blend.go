// SPDX-License-Identifier: MIT

package problems

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/numlab/linsolve"
)

// ErrInvalidComposition is returned for a percentage outside [0, 100].
var ErrInvalidComposition = errors.New("problems: composition percentage out of range")

// Materials names the three components, in row order of the blend system.
var Materials = [3]string{"sand", "fine gravel", "coarse gravel"}

// Blend describes a three-source mixing problem.
//
// Composition[s][m] is the percentage of material m in source s.
// Demands[m] is the required amount of material m.
type Blend struct {
	Demands     [3]float64
	Composition [3][3]float64
}

// BlendResult holds the amount drawn from each source.
type BlendResult struct {
	Amounts [3]float64
	System  string
	Solve   *linsolve.Result
}

// System builds A·x = d with A[m][s] = Composition[s][m]/100.
func (b Blend) System() ([][]float64, []float64, error) {
	a := make([][]float64, 3)
	var m, s int
	for m = 0; m < 3; m++ {
		a[m] = make([]float64, 3)
		for s = 0; s < 3; s++ {
			p := b.Composition[s][m]
			if p < 0 || p > 100 {
				return nil, nil, fmt.Errorf("%w: source %d, %s = %g", ErrInvalidComposition, s+1, Materials[m], p)
			}
			a[m][s] = p / 100
		}
	}

	return a, []float64{b.Demands[0], b.Demands[1], b.Demands[2]}, nil
}

// Solve solves the blend with the given direct method. On a singular
// composition the partial solver result is returned with the error.
func (b Blend) Solve(method linsolve.Method) (*BlendResult, error) {
	a, d, err := b.System()
	if err != nil {
		return nil, err
	}
	out := &BlendResult{System: linsolve.FormatSystem(a, d)}
	out.Solve, err = linsolve.Solve(a, d, method)
	if err != nil {
		return out, fmt.Errorf("blend: %w", err)
	}
	copy(out.Amounts[:], out.Solve.X)

	return out, nil
}
