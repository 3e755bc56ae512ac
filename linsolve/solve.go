// SPDX-License-Identifier: MIT

package linsolve

import (
	"fmt"

	"github.com/katalvlaran/numlab/matrix"
	"github.com/katalvlaran/numlab/trace"
)

// Solve dispatches to the direct method m.
//
// Errors:
//   - ErrUnknownMethod for m outside {Gauss, GaussJordan, LU}.
//   - Everything the selected method returns.
func Solve(a [][]float64, b []float64, m Method) (*Result, error) {
	switch m {
	case Gauss:
		return GaussElimination(a, b)
	case GaussJordan:
		return GaussJordanElimination(a, b)
	case LU:
		return LUSolve(a, b)
	default:
		return nil, linsolveErrorf(opSolve, fmt.Errorf("%w: %v", ErrUnknownMethod, m))
	}
}

// GaussElimination solves A·x = b by Gaussian elimination with partial pivoting.
//
// Implementation:
//   - Stage 1: deep-copy and validate (matrix.SystemFromRows).
//   - Stage 2: for k = 0..n−2 select the pivot row, swap, then for every i > k
//     subtract f·row[k] from row[i] with f = A[i][k]/A[k][k] (and the same on b).
//   - Stage 3: verify the last pivot, back-substitute from row n−1 up to 0.
//
// Returns:
//   - *Result with X, Residual and Trace. On a zero pivot, a *Result with
//     X == nil and the partial Trace is returned together with the error.
//
// Errors:
//   - matrix.ErrDimensionMismatch, matrix.ErrInvalidDimensions, matrix.ErrNaNInf,
//     matrix.ErrNilMatrix (input), matrix.ErrSingular (zero pivot). All wrapped
//     with the "Gauss" tag.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func GaussElimination(a [][]float64, b []float64) (*Result, error) {
	ws, err := newWorkingSystem(a, b)
	if err != nil {
		return nil, linsolveErrorf(opGauss, err)
	}
	tr := trace.New()
	res := &Result{Method: Gauss, Trace: tr}

	tr.Banner("GAUSS ELIMINATION WITH PARTIAL PIVOTING")
	tr.Blank()
	tr.Add("Original system:")
	tr.Add(ws.formatWorking())

	n := ws.n
	var i, j, k, p int
	var f float64
	for k = 0; k < n-1; k++ {
		if p = ws.pivotRow(k); p != k {
			ws.swap(k, p)
			tr.Blank()
			tr.Addf("Swap row %d with row %d (pivoting)", k+1, p+1)
		}
		rk := ws.w.RawRowView(k)
		if ws.isZeroPivot(rk[k]) {
			tr.Add("ERROR: zero pivot found!")
			return res, singularErrorf(opGauss, k)
		}
		tr.Section(fmt.Sprintf("Step %d: elimination below pivot A[%d][%d] = %.4f", k+1, k+1, k+1, rk[k]))

		for i = k + 1; i < n; i++ {
			ri := ws.w.RawRowView(i)
			f = ri[k] / rk[k]
			tr.Addf("Factor m[%d][%d] = %.4f", i+1, k+1, f)
			for j = k; j < n; j++ {
				ri[j] -= f * rk[j]
			}
			ws.rhs[i] -= f * ws.rhs[k]
		}

		tr.Blank()
		tr.Add("System after elimination:")
		tr.Add(ws.formatWorking())
	}
	if ws.isZeroPivot(ws.w.RawRowView(n - 1)[n-1]) {
		tr.Add("ERROR: zero pivot found!")
		return res, singularErrorf(opGauss, n-1)
	}

	tr.Blank()
	tr.Banner("BACK SUBSTITUTION")
	res.X = ws.backSubstitute(tr)
	traceSolution(tr, res.X)
	res.Residual = ws.residual(res.X)

	return res, nil
}

// GaussJordanElimination solves A·x = b by Gauss-Jordan elimination with
// partial pivoting.
//
// Implementation:
//   - For each k = 0..n−1: select and swap the pivot row, divide it by A[k][k],
//     then eliminate column k from every other row, above and below.
//   - After n passes A is the identity and the transformed b is the solution;
//     there is no back-substitution phase.
//
// Returns / Errors: as GaussElimination, tagged "GaussJordan".
//
// Complexity:
//   - Time O(n³), Space O(n²).
func GaussJordanElimination(a [][]float64, b []float64) (*Result, error) {
	ws, err := newWorkingSystem(a, b)
	if err != nil {
		return nil, linsolveErrorf(opGaussJordan, err)
	}
	tr := trace.New()
	res := &Result{Method: GaussJordan, Trace: tr}

	tr.Banner("GAUSS-JORDAN ELIMINATION WITH PARTIAL PIVOTING")
	tr.Blank()
	tr.Add("Original system:")
	tr.Add(ws.formatWorking())

	n := ws.n
	var i, j, k, p int
	var f, pivot float64
	for k = 0; k < n; k++ {
		if p = ws.pivotRow(k); p != k {
			ws.swap(k, p)
			tr.Blank()
			tr.Addf("Swap row %d with row %d (pivoting)", k+1, p+1)
		}
		rk := ws.w.RawRowView(k)
		if ws.isZeroPivot(rk[k]) {
			tr.Add("ERROR: zero pivot found!")
			return res, singularErrorf(opGaussJordan, k)
		}
		tr.Section(fmt.Sprintf("Step %d: eliminating column %d", k+1, k+1))

		pivot = rk[k]
		for j = k; j < n; j++ {
			rk[j] /= pivot
		}
		ws.rhs[k] /= pivot
		tr.Addf("Row %d normalized by pivot: %.4f", k+1, pivot)

		for i = 0; i < n; i++ {
			if i == k {
				continue
			}
			ri := ws.w.RawRowView(i)
			f = ri[k]
			tr.Addf("Factor m[%d][%d] = %.4f", i+1, k+1, f)
			for j = k; j < n; j++ {
				ri[j] -= f * rk[j]
			}
			ws.rhs[i] -= f * ws.rhs[k]
		}

		tr.Blank()
		tr.Add("System after step:")
		tr.Add(ws.formatWorking())
	}

	res.X = append([]float64(nil), ws.rhs...)
	traceSolution(tr, res.X)
	res.Residual = ws.residual(res.X)

	return res, nil
}

// LUSolve factorizes PA = LU with partial pivoting and solves A·x = b.
//
// Implementation:
//   - Stage 1: for k = 0..n−2 select the pivot row and swap it in A, in the
//     already-built columns of L, in b and in the permutation record, all in
//     lockstep; store multipliers L[i][k] = A[i][k]/A[k][k] and eliminate.
//   - Stage 2: forward substitution L·y = P·b (unit diagonal, no division).
//   - Stage 3: back substitution U·x = y.
//
// Returns:
//   - *Result with X, L, U, Perm, Residual and Trace (partial on failure).
//
// Errors: as GaussElimination, tagged "LU".
//
// Complexity:
//   - Time O(n³), Space O(n²) for L and U.
func LUSolve(a [][]float64, b []float64) (*Result, error) {
	ws, err := newWorkingSystem(a, b)
	if err != nil {
		return nil, linsolveErrorf(opLU, err)
	}
	n := ws.n
	L, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, linsolveErrorf(opLU, err)
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	tr := trace.New()
	res := &Result{Method: LU, Trace: tr}
	tr.Banner("LU FACTORIZATION WITH PARTIAL PIVOTING")
	tr.Blank()
	tr.Add("Original system:")
	tr.Add(ws.formatWorking())
	tr.Section("STAGE 1: FACTORIZATION")

	var i, j, k, p int
	var lik float64
	for k = 0; k < n-1; k++ {
		if p = ws.pivotRow(k); p != k {
			ws.swap(k, p)
			_ = L.SwapRows(k, p)
			perm[k], perm[p] = perm[p], perm[k]
			tr.Addf("Swap row %d with row %d (pivoting)", k+1, p+1)
		}
		rk := ws.w.RawRowView(k)
		if ws.isZeroPivot(rk[k]) {
			tr.Add("ERROR: zero pivot found!")
			return res, singularErrorf(opLU, k)
		}
		tr.Section(fmt.Sprintf("Step %d: factorization with pivot A[%d][%d] = %.4f", k+1, k+1, k+1, rk[k]))

		L.RawRowView(k)[k] = 1
		for i = k + 1; i < n; i++ {
			ri := ws.w.RawRowView(i)
			lik = ri[k] / rk[k]
			L.RawRowView(i)[k] = lik
			tr.Addf("L[%d][%d] = %.4f", i+1, k+1, lik)
			ri[k] = 0
			for j = k + 1; j < n; j++ {
				ri[j] -= lik * rk[j]
			}
		}
	}
	L.RawRowView(n - 1)[n-1] = 1
	if ws.isZeroPivot(ws.w.RawRowView(n - 1)[n-1]) {
		tr.Add("ERROR: zero pivot found!")
		return res, singularErrorf(opLU, n-1)
	}
	U := ws.w

	tr.Section("L and U factors")
	tr.Blank()
	tr.Add("Matrix L (lower triangular):")
	tr.Add(formatFactor(L))
	tr.Blank()
	tr.Add("Matrix U (upper triangular):")
	tr.Add(formatFactor(U))

	tr.Section("STAGE 2: FORWARD SUBSTITUTION (Ly = Pb)")
	y := make([]float64, n)
	var sum float64
	for i = 0; i < n; i++ {
		li := L.RawRowView(i)
		sum = matrix.ZeroSum
		for j = 0; j < i; j++ {
			sum += li[j] * y[j]
		}
		y[i] = ws.rhs[i] - sum
		tr.Addf("y[%d] = %.6f", i+1, y[i])
	}

	tr.Section("STAGE 3: BACK SUBSTITUTION (Ux = y)")
	copy(ws.rhs, y)
	res.X = ws.backSubstitute(tr)
	traceSolution(tr, res.X)

	res.L, res.U, res.Perm = L, U, perm
	res.Residual = ws.residual(res.X)

	return res, nil
}
