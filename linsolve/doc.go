// Package linsolve solves dense square systems A·x = b by direct elimination.
//
// 🚀 Methods:
//
//	• Gauss        — forward elimination with partial pivoting + back substitution
//	• GaussJordan  — normalize each pivot row and clear its column above and below;
//	                 the transformed right-hand side is the solution
//	• LU           — PA = LU (unit-diagonal L, permutation tracked), then
//	                 forward substitution L·y = P·b and back substitution U·x = y
//
// ✨ Guarantees:
//   - The caller's matrix and vector are deep-copied on entry and never mutated
//     (see matrix.SystemFromRows).
//   - Partial pivoting: at step k the row among k..n−1 with the largest |A[i][k]|
//     becomes the pivot; ties keep the lowest index.
//   - A (numerically) zero pivot aborts the whole solve with matrix.ErrSingular;
//     there is no partial or approximate solution.
//   - Every swap, elimination factor and intermediate system is recorded in
//     Result.Trace; the trace never drives control flow.
//
// ⚙️ Usage:
//
//	res, err := linsolve.Solve([][]float64{{2, 1}, {1, 3}}, []float64{3, 5}, linsolve.Gauss)
//	if err != nil {
//	  // errors.Is(err, matrix.ErrSingular), errors.Is(err, matrix.ErrDimensionMismatch)
//	}
//	fmt.Println(res.X)            // [0.8 1.4]
//	fmt.Println(res.Trace.String())
//
// Complexity: O(n³) time, O(n²) memory for the working copy (plus L for LU).
package linsolve
