// Package iterative solves A·x = b by stationary fixed-point iteration.
//
// 🚀 Methods:
//
//	• Jacobi       — every component of sweep k+1 is computed from sweep k only;
//	                 the new vector is buffered and swapped in after the sweep
//	• GaussSeidel  — components j < i already updated in the current sweep are
//	                 used immediately, j > i come from the previous sweep
//
// ✨ Convergence:
//   - After each full sweep the maximum relative change
//     max_i |x_new[i] − x_old[i]| / |x_new[i]| is computed over the components
//     with x_new[i] ≠ 0; the iteration stops when it drops below Tolerance.
//     Components that are exactly zero are skipped, so a solution with zero
//     entries can report convergence on its non-zero part alone.
//   - Reaching MaxIterations is not an error: the best current estimate is
//     returned with Converged == false and Iterations == MaxIterations.
//   - Diagonal dominance is sufficient (not necessary) for convergence; it is
//     not checked. A zero diagonal entry is rejected with ErrZeroDiagonal.
//
// ⚙️ Usage:
//
//	opts := iterative.DefaultOptions() // Tolerance 1e-4, MaxIterations 1000, x0 = 0
//	opts.Tolerance = 1e-6
//	res, err := iterative.GaussSeidel([][]float64{{2, 1}, {1, 3}}, []float64{3, 5}, opts)
//	if err != nil { ... }
//	if !res.Converged { ... } // cap reached, res.X is the last estimate
//
// Options.Ctx, when set, is checked between sweeps so callers can bound the
// wall-clock time of large iteration caps.
package iterative
