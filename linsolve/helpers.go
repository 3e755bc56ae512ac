// SPDX-License-Identifier: MIT

package linsolve

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/numlab/matrix"
	"github.com/katalvlaran/numlab/trace"
)

// linsolveErrorf wraps err with an operation tag, preserving it for errors.Is.
func linsolveErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// singularErrorf reports a zero pivot at 0-based step k.
func singularErrorf(tag string, k int) error {
	return fmt.Errorf("%s: zero pivot at step %d: %w", tag, k+1, matrix.ErrSingular)
}

// workingSystem copies (a, b) into private storage and records the threshold
// used by the zero-pivot test. It also keeps an untouched clone for the residual.
type workingSystem struct {
	w     *matrix.Dense // mutated in place by the elimination
	rhs   []float64     // mutated in lockstep with w
	orig  *matrix.Dense // pristine copy of A for the residual
	b     []float64     // pristine copy of b
	n     int
	tol   float64 // n · PivotEpsilon · max|A[i][j]|
}

func newWorkingSystem(a [][]float64, b []float64) (*workingSystem, error) {
	w, rhs, err := matrix.SystemFromRows(a, b)
	if err != nil {
		return nil, err
	}
	ws := &workingSystem{
		w:    w,
		rhs:  rhs,
		orig: w.Clone().(*matrix.Dense),
		b:    append([]float64(nil), rhs...),
		n:    len(rhs),
	}
	var i int
	var scale float64
	for i = 0; i < ws.n; i++ {
		if s := matrix.NormInf(w.RawRowView(i)); s > scale {
			scale = s
		}
	}
	ws.tol = float64(ws.n) * PivotEpsilon * scale

	return ws, nil
}

// isZeroPivot reports a pivot within round-off of zero.
func (ws *workingSystem) isZeroPivot(p float64) bool {
	return math.Abs(p) <= ws.tol
}

// pivotRow returns the row index in k..n−1 with the largest |A[i][k]|.
// Strict comparison keeps the lowest index on ties.
func (ws *workingSystem) pivotRow(k int) int {
	best, bestVal := k, math.Abs(ws.w.RawRowView(k)[k])
	var i int
	var v float64
	for i = k + 1; i < ws.n; i++ {
		if v = math.Abs(ws.w.RawRowView(i)[k]); v > bestVal {
			best, bestVal = i, v
		}
	}

	return best
}

// swap exchanges rows k and p of the working matrix and right-hand side.
func (ws *workingSystem) swap(k, p int) {
	// indices come from pivotRow and are always in range
	_ = ws.w.SwapRows(k, p)
	ws.rhs[k], ws.rhs[p] = ws.rhs[p], ws.rhs[k]
}

// residual computes ‖A·x − b‖∞ against the pristine system.
func (ws *workingSystem) residual(x []float64) float64 {
	r, err := matrix.ResidualInf(ws.orig, x, ws.b)
	if err != nil {
		return math.NaN()
	}

	return r
}

// backSubstitute solves the upper-triangular system held in ws.w, ws.rhs.
func (ws *workingSystem) backSubstitute(tr *trace.Trace) []float64 {
	x := make([]float64, ws.n)
	var i, j int
	var sum float64
	for i = ws.n - 1; i >= 0; i-- {
		row := ws.w.RawRowView(i)
		sum = matrix.ZeroSum
		for j = i + 1; j < ws.n; j++ {
			sum += row[j] * x[j]
		}
		x[i] = (ws.rhs[i] - sum) / row[i]
		tr.Addf("x[%d] = %.6f", i+1, x[i])
	}

	return x
}

// traceSolution appends the final solution block.
func traceSolution(tr *trace.Trace, x []float64) {
	tr.Blank()
	tr.Banner("FINAL SOLUTION")
	for i, v := range x {
		tr.Addf("x[%d] = %.6f", i+1, v)
	}
}

// FormatSystem renders A·x = b one equation per line, e.g.
//
//	[   2.0000   1.0000 ] [ x1 ]   [   3.0000 ]
//
// Rows shorter than len(b) are padded with blanks rather than rejected, so the
// function is safe to call on unvalidated input for display purposes.
func FormatSystem(a [][]float64, b []float64) string {
	lines := make([]string, len(b))
	var sb strings.Builder
	for i := range b {
		sb.Reset()
		sb.WriteString("[ ")
		for j := 0; j < len(b); j++ {
			if i < len(a) && j < len(a[i]) {
				fmt.Fprintf(&sb, "%8.4f ", a[i][j])
			} else {
				sb.WriteString("         ")
			}
		}
		fmt.Fprintf(&sb, "] [ x%d ]   [ %8.4f ]", i+1, b[i])
		lines[i] = sb.String()
	}

	return strings.Join(lines, "\n")
}

// formatWorking renders the current working system.
func (ws *workingSystem) formatWorking() string {
	return FormatSystem(ws.w.ToRows(), ws.rhs)
}

// formatFactor renders a square factor row by row with %8.4f cells.
func formatFactor(m *matrix.Dense) string {
	rows := m.ToRows()
	lines := make([]string, len(rows))
	cells := make([]string, 0, len(rows))
	for i, row := range rows {
		cells = cells[:0]
		for _, v := range row {
			cells = append(cells, fmt.Sprintf("%8.4f", v))
		}
		lines[i] = "  " + strings.Join(cells, "  ")
	}

	return strings.Join(lines, "\n")
}
