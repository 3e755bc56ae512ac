// SPDX-License-Identifier: MIT
package iterative_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/numlab/iterative"
	"github.com/katalvlaran/numlab/linsolve"
	"github.com/katalvlaran/numlab/matrix"
)

var (
	sysA = [][]float64{{2, 1}, {1, 3}}
	sysB = []float64{3, 5}
)

// IterativeSuite covers both sweep rules on shared systems.
type IterativeSuite struct {
	suite.Suite
}

// TestGaussSeidelScenario: A=[[2,1],[1,3]], b=[3,5], x0=0, tol=1e-6 → [0.8,1.4].
func (s *IterativeSuite) TestGaussSeidelScenario() {
	opts := iterative.DefaultOptions()
	opts.Tolerance = 1e-6
	res, err := iterative.GaussSeidelSolve(sysA, sysB, opts)
	require.NoError(s.T(), err)
	require.True(s.T(), res.Converged)
	require.InDeltaSlice(s.T(), []float64{0.8, 1.4}, res.X, 1e-5)
	require.Less(s.T(), res.Iterations, 20)
	require.Len(s.T(), res.History, res.Iterations)
	require.Less(s.T(), res.MaxRelChange, 1e-6)

	out := res.Trace.String()
	require.Contains(s.T(), out, "=== GAUSS-SEIDEL METHOD ===")
	require.Contains(s.T(), out, "--- Iteration 1 ---")
	require.Contains(s.T(), out, "=== CONVERGENCE REACHED ===")
}

// TestSeidelNotSlowerThanJacobi compares sweep counts on the same system.
func (s *IterativeSuite) TestSeidelNotSlowerThanJacobi() {
	opts := iterative.DefaultOptions()
	opts.Tolerance = 1e-8

	jac, err := iterative.Solve(sysA, sysB, iterative.Jacobi, opts)
	require.NoError(s.T(), err)
	gs, err := iterative.Solve(sysA, sysB, iterative.GaussSeidel, opts)
	require.NoError(s.T(), err)

	require.True(s.T(), jac.Converged)
	require.True(s.T(), gs.Converged)
	require.LessOrEqual(s.T(), gs.Iterations, jac.Iterations)
	require.InDeltaSlice(s.T(), jac.X, gs.X, 1e-6)
}

// TestFirstJacobiSweep checks the buffered update: sweep 1 from x0=0 is b[i]/A[i][i].
func (s *IterativeSuite) TestFirstJacobiSweep() {
	opts := iterative.DefaultOptions()
	opts.MaxIterations = 1
	res, err := iterative.JacobiSolve(sysA, sysB, opts)
	require.NoError(s.T(), err)
	require.InDeltaSlice(s.T(), []float64{1.5, 5.0 / 3}, res.History[0], 1e-15)

	res, err = iterative.GaussSeidelSolve(sysA, sysB, opts)
	require.NoError(s.T(), err)
	// x2 already sees the updated x1 = 1.5
	require.InDeltaSlice(s.T(), []float64{1.5, (5 - 1.5) / 3}, res.History[0], 1e-15)
}

// TestAgreesWithDirect checks both methods against Gauss elimination on
// random diagonally dominant systems.
func (s *IterativeSuite) TestAgreesWithDirect() {
	rng := rand.New(rand.NewSource(3))
	for _, n := range []int{3, 6, 10} {
		a, b := randomDominant(rng, n)
		direct, err := linsolve.Solve(a, b, linsolve.Gauss)
		require.NoError(s.T(), err)

		opts := iterative.DefaultOptions()
		opts.Tolerance = 1e-12
		for _, m := range []iterative.Method{iterative.Jacobi, iterative.GaussSeidel} {
			res, err := iterative.Solve(a, b, m, opts)
			require.NoError(s.T(), err)
			require.True(s.T(), res.Converged, "n=%d %s", n, m)
			require.InDeltaSlice(s.T(), direct.X, res.X, 1e-8, "n=%d %s", n, m)
		}
	}
}

// TestCapReached verifies the soft failure when the sweep cap is hit.
func (s *IterativeSuite) TestCapReached() {
	opts := iterative.DefaultOptions()
	opts.MaxIterations = 2
	opts.Tolerance = 1e-12
	res, err := iterative.JacobiSolve(sysA, sysB, opts)
	require.NoError(s.T(), err)
	require.False(s.T(), res.Converged)
	require.Equal(s.T(), 2, res.Iterations)
	require.Len(s.T(), res.History, 2)
	require.Equal(s.T(), res.History[1], res.X)
	require.Contains(s.T(), res.Trace.String(), "WARNING: maximum number of iterations (2) reached!")
}

// TestTraceSweepsBounded keeps only the leading sweeps in History and Trace
// while the solve itself runs to the cap.
func (s *IterativeSuite) TestTraceSweepsBounded() {
	opts := iterative.DefaultOptions()
	opts.MaxIterations = 20
	opts.TraceSweeps = 3
	res, err := iterative.GaussSeidelSolve([][]float64{{1, 3}, {2, 1}}, []float64{1, 1}, opts)
	require.NoError(s.T(), err)
	require.False(s.T(), res.Converged)
	require.Equal(s.T(), 20, res.Iterations)
	require.Len(s.T(), res.History, 3)

	steps := res.Trace.String()
	require.Contains(s.T(), steps, "--- Iteration 3 ---")
	require.NotContains(s.T(), steps, "--- Iteration 4 ---")
	require.Contains(s.T(), steps, "... sweeps after 3 are not recorded")
	require.Contains(s.T(), steps, "Last estimate:")
	require.Contains(s.T(), steps, "WARNING: maximum number of iterations (20) reached!")

	// Converging past the cap still reports the final sweep.
	opts.Tolerance = 1e-10
	opts.MaxIterations = 1000
	opts.TraceSweeps = 1
	res, err = iterative.JacobiSolve(sysA, sysB, opts)
	require.NoError(s.T(), err)
	require.True(s.T(), res.Converged)
	require.Greater(s.T(), res.Iterations, 1)
	require.Len(s.T(), res.History, 1)
	require.Contains(s.T(), res.Trace.String(), "CONVERGENCE REACHED")
	require.Contains(s.T(), res.Trace.String(), "Final solution:")
}

// TestDivergent: a non-dominant system runs to the cap without error.
func (s *IterativeSuite) TestDivergent() {
	opts := iterative.DefaultOptions()
	opts.MaxIterations = 30
	res, err := iterative.GaussSeidelSolve([][]float64{{1, 3}, {2, 1}}, []float64{1, 1}, opts)
	require.NoError(s.T(), err)
	require.False(s.T(), res.Converged)
	require.Equal(s.T(), 30, res.Iterations)
}

// TestZeroComponentSkipped: exact zero components are excluded from the
// relative change, so starting at the solution converges in one sweep.
func (s *IterativeSuite) TestZeroComponentSkipped() {
	opts := iterative.DefaultOptions()
	opts.Initial = []float64{0, 1}
	res, err := iterative.GaussSeidelSolve(sysA, []float64{1, 3}, opts)
	require.NoError(s.T(), err)
	require.True(s.T(), res.Converged)
	require.Equal(s.T(), 1, res.Iterations)
	require.Equal(s.T(), []float64{0, 1}, res.X)
	require.False(s.T(), math.IsNaN(res.MaxRelChange))
}

// TestNegativeDiagonal: only exact zeros are rejected.
func (s *IterativeSuite) TestNegativeDiagonal() {
	res, err := iterative.JacobiSolve([][]float64{{-4, 1}, {1, -3}}, []float64{-3, -2}, iterative.DefaultOptions())
	require.NoError(s.T(), err)
	require.True(s.T(), res.Converged)
	require.InDeltaSlice(s.T(), []float64{1, 1}, res.X, 1e-3)
}

// TestInputsNotMutated enforces the ownership rule on A, b and x0.
func (s *IterativeSuite) TestInputsNotMutated() {
	a := [][]float64{{4, 1}, {2, 5}}
	b := []float64{1, 2}
	x0 := []float64{7, 7}
	opts := iterative.DefaultOptions()
	opts.Initial = x0
	_, err := iterative.GaussSeidelSolve(a, b, opts)
	require.NoError(s.T(), err)
	require.Equal(s.T(), [][]float64{{4, 1}, {2, 5}}, a)
	require.Equal(s.T(), []float64{1, 2}, b)
	require.Equal(s.T(), []float64{7, 7}, x0)
}

func TestIterativeSuite(t *testing.T) {
	suite.Run(t, new(IterativeSuite))
}

func TestErrors(t *testing.T) {
	t.Parallel()

	base := iterative.DefaultOptions()
	with := func(f func(*iterative.Options)) iterative.Options {
		o := base
		f(&o)
		return o
	}

	cases := []struct {
		name string
		a    [][]float64
		b    []float64
		opts iterative.Options
		want error
	}{
		{"zero diagonal", [][]float64{{0, 1}, {1, 2}}, []float64{1, 1}, base, iterative.ErrZeroDiagonal},
		{"zero tolerance", sysA, sysB, with(func(o *iterative.Options) { o.Tolerance = 0 }), iterative.ErrBadTolerance},
		{"nan tolerance", sysA, sysB, with(func(o *iterative.Options) { o.Tolerance = math.NaN() }), iterative.ErrBadTolerance},
		{"inf tolerance", sysA, sysB, with(func(o *iterative.Options) { o.Tolerance = math.Inf(1) }), iterative.ErrBadTolerance},
		{"zero cap", sysA, sysB, with(func(o *iterative.Options) { o.MaxIterations = 0 }), iterative.ErrBadMaxIterations},
		{"short x0", sysA, sysB, with(func(o *iterative.Options) { o.Initial = []float64{1} }), matrix.ErrDimensionMismatch},
		{"nan x0", sysA, sysB, with(func(o *iterative.Options) { o.Initial = []float64{1, math.NaN()} }), matrix.ErrNaNInf},
		{"non-square", [][]float64{{1, 2, 3}, {4, 5, 6}}, sysB, base, matrix.ErrDimensionMismatch},
		{"short b", sysA, []float64{1}, base, matrix.ErrDimensionMismatch},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			for _, m := range []iterative.Method{iterative.Jacobi, iterative.GaussSeidel} {
				res, err := iterative.Solve(tc.a, tc.b, m, tc.opts)
				require.ErrorIs(t, err, tc.want)
				assert.Nil(t, res)
			}
		})
	}

	_, err := iterative.Solve(sysA, sysB, iterative.Method(5), base)
	require.ErrorIs(t, err, iterative.ErrUnknownMethod)
}

func TestContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := iterative.DefaultOptions()
	opts.Ctx = ctx
	res, err := iterative.JacobiSolve(sysA, sysB, opts)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	require.False(t, res.Converged)
	require.Equal(t, 0, res.Iterations)
}

func TestParseMethod(t *testing.T) {
	for name, want := range map[string]iterative.Method{
		"jacobi":       iterative.Jacobi,
		"Jacobi":       iterative.Jacobi,
		"gauss_seidel": iterative.GaussSeidel,
		"gauss-seidel": iterative.GaussSeidel,
		"seidel":       iterative.GaussSeidel,
	} {
		got, err := iterative.ParseMethod(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := iterative.ParseMethod("sor")
	require.ErrorIs(t, err, iterative.ErrUnknownMethod)
	require.Equal(t, "gauss_seidel", iterative.GaussSeidel.String())
}

func randomDominant(rng *rand.Rand, n int) ([][]float64, []float64) {
	a := make([][]float64, n)
	b := make([]float64, n)
	var i, j int
	for i = 0; i < n; i++ {
		a[i] = make([]float64, n)
		var off float64
		for j = 0; j < n; j++ {
			if i != j {
				a[i][j] = rng.Float64()*2 - 1
				off += math.Abs(a[i][j])
			}
		}
		a[i][i] = 2*off + 1
		b[i] = rng.Float64()*10 - 5
	}

	return a, b
}
