// Package quadrature integrates tabulated samples y(x) by Newton-Cotes rules.
//
// 🚀 Methods:
//
//	• Trapezoid  — Σ (x[i+1]−x[i])/2 · (y[i]+y[i+1]); any spacing, exact for degree ≤ 1
//	• Simpson    — repeated Simpson 1/3; requires an even number of intervals,
//	               exact for degree ≤ 3 on uniform spacing
//	• Hybrid     — Simpson on an even interval count; otherwise Simpson on the
//	               first n−1 intervals plus a trapezoid on the last one
//
// ✨ Contract:
//   - len(x) == len(y) ≥ 2 (≥ 3 for pure Simpson).
//   - x must be strictly increasing; ordering is not checked.
//   - Spacing counts as uniform when every step is within 1e-10 of the first.
//     Non-uniform Simpson panels use the three-point quadratic-interpolation
//     weights, which reduce to h/3·(1, 4, 1) on uniform spacing.
//   - Pure Simpson on an odd interval count is not an error: the Result has
//     Applicable == false and no area, so batch callers keep sibling results.
//     Trapezoid and Hybrid always produce an area.
//
// ⚙️ Usage:
//
//	res, err := quadrature.Integrate(x, y, quadrature.Hybrid)
//	for _, o := range quadrature.IntegrateAll(x, y) { ... } // trapezoid + hybrid
package quadrature
