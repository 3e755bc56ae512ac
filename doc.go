// Package numlab is a numerical-methods workbench: every result comes with
// the step-by-step derivation that produced it.
//
// 🚀 What is numlab?
//
//	A small, dependency-light toolkit that brings together:
//		• Direct solvers: Gauss, Gauss-Jordan, LU (partial pivoting)
//		• Iterative solvers: Jacobi, Gauss-Seidel
//		• Least squares: linear, quadratic, exponential
//		• Quadrature on samples: trapezoid, Simpson 1/3, hybrid
//		• Growth trends: log₁₀-linear fit, predictions, doubling time
//		• Series kernels: ln and exp from truncated series
//
// ✨ Why numlab?
//
//   - Transparent – each engine returns a trace of every elimination,
//     sweep or panel it computed
//   - Safe inputs – caller slices are copied, never mutated
//   - Explicit errors – sentinel errors for errors.Is across packages
//   - Pure Go – no cgo
//
// Packages:
//
//	matrix/     — dense storage, validators, residuals, shared sentinel errors
//	trace/      — the derivation log attached to every result
//	series/     — Ln, Exp, Log10, Pow10
//	linsolve/   — Gauss, Gauss-Jordan, LU
//	iterative/  — Jacobi, Gauss-Seidel
//	regression/ — linear, quadratic, exponential fits
//	quadrature/ — trapezoid, Simpson, hybrid
//	growth/     — log₁₀-linear growth model
//
// The JSON API lives in internal/server and the CLI in cmd/numlab:
//
//	go run ./cmd/numlab solve --matrix '[[2,1],[1,3]]' --vector 3,5
//	go run ./cmd/numlab serve --port 5000
package numlab
