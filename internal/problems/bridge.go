// SPDX-License-Identifier: MIT

package problems

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/numlab/iterative"
)

// ErrInvalidResistance is returned for a resistance ≤ 0.
var ErrInvalidResistance = errors.New("problems: resistance must be positive")

// Bridge is a Wheatstone bridge driven by a source E with resistors R1..R5;
// R5 is the bridge (galvanometer) branch.
type Bridge struct {
	E                  float64
	R1, R2, R3, R4, R5 float64
}

// BridgeResult holds the three mesh currents.
type BridgeResult struct {
	I1, I2, I3 float64
	System     string
	Solve      *iterative.Result
}

// System builds the mesh equations
//
//	R1·i1 + R2·i2                 = E
//	        (R2+R5)·i2 − R5·i3     = 0
//	       −R5·i2 + (R3+R4+R5)·i3  = 0
func (b Bridge) System() ([][]float64, []float64, error) {
	for i, r := range []float64{b.R1, b.R2, b.R3, b.R4, b.R5} {
		if !(r > 0) {
			return nil, nil, fmt.Errorf("%w: R%d = %g", ErrInvalidResistance, i+1, r)
		}
	}
	a := [][]float64{
		{b.R1, b.R2, 0},
		{0, b.R2 + b.R5, -b.R5},
		{0, -b.R5, b.R3 + b.R4 + b.R5},
	}

	return a, []float64{b.E, 0, 0}, nil
}

// Describe renders the system as Kirchhoff equations.
func (b Bridge) Describe() string {
	return fmt.Sprintf("Linear system (Kirchhoff's laws):\n"+
		"Equation 1 (left mesh):    %g*i1 + %g*i2 = %g\n"+
		"Equation 2 (central mesh): %g*i2 - %g*i3 = 0\n"+
		"Equation 3 (right mesh):   -%g*i2 + %g*i3 = 0",
		b.R1, b.R2, b.E,
		b.R2+b.R5, b.R5,
		b.R5, b.R3+b.R4+b.R5)
}

// Solve iterates the mesh system with the given method and options. A run
// that hits the iteration cap is not an error; inspect Solve.Converged.
func (b Bridge) Solve(method iterative.Method, opts iterative.Options) (*BridgeResult, error) {
	a, rhs, err := b.System()
	if err != nil {
		return nil, err
	}
	res, err := iterative.Solve(a, rhs, method, opts)
	if err != nil {
		return nil, fmt.Errorf("bridge: %w", err)
	}

	return &BridgeResult{
		I1:     res.X[0],
		I2:     res.X[1],
		I3:     res.X[2],
		System: b.Describe(),
		Solve:  res,
	}, nil
}
