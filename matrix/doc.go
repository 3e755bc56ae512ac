// Package matrix offers the dense storage and guards shared by the numlab solvers.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set that return
//     errors instead of panicking.
//   - NewDenseFromRows / SystemFromRows, the ownership boundary: caller data is
//     deep-copied, so solvers mutate only their private working copy.
//   - Validators (square, vector length, finite values) and the canonical
//     sentinel errors (ErrDimensionMismatch, ErrSingular, ...) wrapped by the
//     engine packages.
//   - MatVec and ResidualInf for certifying a solution of A·x = b.
//
// Dense matrices fit the small, well-conditioned systems the engines target;
// sparse storage is out of scope.
package matrix
