// SPDX-License-Identifier: MIT
package problems_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/numlab/internal/problems"
	"github.com/katalvlaran/numlab/iterative"
	"github.com/katalvlaran/numlab/linsolve"
	"github.com/katalvlaran/numlab/matrix"
)

func mines() problems.Blend {
	comp := [3][3]float64{
		{52, 30, 18},
		{20, 50, 30},
		{25, 20, 55},
	}
	want := [3]float64{100, 200, 300}
	var d [3]float64
	for m := 0; m < 3; m++ {
		for s := 0; s < 3; s++ {
			d[m] += comp[s][m] / 100 * want[s]
		}
	}

	return problems.Blend{Demands: d, Composition: comp}
}

func TestBlend_RecoversAmounts(t *testing.T) {
	t.Parallel()

	b := mines()
	for _, m := range []linsolve.Method{linsolve.Gauss, linsolve.GaussJordan, linsolve.LU} {
		res, err := b.Solve(m)
		require.NoError(t, err, m.String())
		require.InDeltaSlice(t, []float64{100, 200, 300}, res.Amounts[:], 1e-9)
		require.Contains(t, res.System, "[ x1 ]")
		require.Equal(t, m, res.Solve.Method)
	}
}

func TestBlend_System(t *testing.T) {
	a, d, err := mines().System()
	require.NoError(t, err)
	require.Equal(t, 0.52, a[0][0])
	require.Equal(t, 0.2, a[0][1]) // sand share of source 2
	require.Equal(t, 0.3, a[1][0]) // fine gravel share of source 1
	require.Len(t, d, 3)
}

func TestBlend_Errors(t *testing.T) {
	b := mines()
	b.Composition[1][2] = 120
	_, err := b.Solve(linsolve.Gauss)
	require.ErrorIs(t, err, problems.ErrInvalidComposition)

	// two identical sources
	b = mines()
	b.Composition[2] = b.Composition[0]
	res, err := b.Solve(linsolve.Gauss)
	require.ErrorIs(t, err, matrix.ErrSingular)
	require.NotNil(t, res)
	require.False(t, res.Solve.Solved())
}

func TestBridge_Solve(t *testing.T) {
	t.Parallel()

	br := problems.Bridge{E: 10, R1: 2, R2: 4, R3: 3, R4: 5, R5: 6}
	opts := iterative.DefaultOptions()
	res, err := br.Solve(iterative.GaussSeidel, opts)
	require.NoError(t, err)
	require.True(t, res.Solve.Converged)
	require.InDelta(t, 5.0, res.I1, 1e-12)
	require.Zero(t, res.I2)
	require.Zero(t, res.I3)
	require.Equal(t, 2, res.Solve.Iterations)
	require.Contains(t, res.System, "Equation 2 (central mesh): 10*i2 - 6*i3 = 0")

	res, err = br.Solve(iterative.Jacobi, opts)
	require.NoError(t, err)
	require.InDelta(t, 5.0, res.I1, 1e-12)
}

func TestBridge_Errors(t *testing.T) {
	_, err := problems.Bridge{E: 1, R1: 1, R2: 1, R3: 0, R4: 1, R5: 1}.Solve(iterative.GaussSeidel, iterative.DefaultOptions())
	require.ErrorIs(t, err, problems.ErrInvalidResistance)

	opts := iterative.DefaultOptions()
	opts.Tolerance = -1
	_, err = problems.Bridge{E: 1, R1: 1, R2: 1, R3: 1, R4: 1, R5: 1}.Solve(iterative.Jacobi, opts)
	require.ErrorIs(t, err, iterative.ErrBadTolerance)
}
