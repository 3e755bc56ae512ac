// Package regression fits least-squares models to sampled (x, y) data.
//
// 🚀 Models:
//
//	• Linear       y = a + b·x         closed form (Cramer's rule on the 2×2 normal equations)
//	• Quadratic    y = a + b·x + c·x²  3×3 normal equations solved by linsolve Gauss elimination
//	• Exponential  y = a·e^(b·x)       linearized as ln y = ln a + b·x, then a linear fit
//
// ✨ Notes:
//   - Logarithms and exponentials go through package series, not package math.
//   - The exponential SSE is measured in the original scale: Σ(yᵢ − a·e^(b·xᵢ))².
//   - Every fit records its power sums and coefficients in Result.Trace.
//   - FitAll runs all three models; a failing model (e.g. exponential on
//     non-positive data) does not prevent the others.
//
// Errors: ErrDimensionMismatch, ErrTooFewPoints, ErrDegenerate (all x equal,
// wraps matrix.ErrSingular), ErrNonPositive, ErrUnknownKind.
package regression
