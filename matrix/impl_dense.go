// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Own every buffer: constructors deep-copy caller data, so solvers can mutate
//     their working copy without ever aliasing the caller's rows.
//   - Enforce the numeric policy (rejection of NaN/Inf) from a single place.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; NewDenseFromRows: O(r*c) copy; At/Set: O(1);
//     Clone: O(r*c); SwapRows: O(c); RawRowView: O(1).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"       // method tag used in error wrappers
	ctxSet      = "Set"      // method tag used in error wrappers
	ctxFromRows = "FromRows" // ctor tag for NewDenseFromRows
	ctxSwap     = "SwapRows" // method tag for SwapRows
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
//
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//
// Notes:
//   - Keep tags in constants for grep-ability and consistency.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (>0 for every public constructor)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	// make() zero-fills the buffer deterministically.
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFromRows builds a Dense by deep-copying a rectangular [][]float64.
// MAIN DESCRIPTION:
//   - Ingestion point for caller-owned data. The returned matrix shares no memory
//     with rows, so it may be used as a private working copy.
//
// Implementation:
//   - Stage 1: reject empty input (ErrInvalidDimensions).
//   - Stage 2: every row must have len(rows[0]) entries (ErrDimensionMismatch).
//   - Stage 3: copy values, rejecting NaN/±Inf (ErrNaNInf) with coordinates.
//
// Inputs:
//   - rows: r slices of c values each, r>0, c>0.
//
// Returns:
//   - *Dense: independent r×c matrix.
//
// Errors:
//   - ErrInvalidDimensions, ErrDimensionMismatch, ErrNaNInf (wrapped with context).
//
// Determinism:
//   - Fixed i→j copy order; the first offending cell is the one reported.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("Dense.%s: %w", ctxFromRows, ErrInvalidDimensions)
	}
	r, c := len(rows), len(rows[0])
	m := &Dense{r: r, c: c, data: make([]float64, r*c)}

	var i, j int // loop iterators
	var v float64
	for i = 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("Dense.%s: row %d has %d values, want %d: %w",
				ctxFromRows, i, len(rows[i]), c, ErrDimensionMismatch)
		}
		for j = 0; j < c; j++ {
			v = rows[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, denseErrorf(ctxFromRows, i, j, ErrNaNInf)
			}
			m.data[i*c+j] = v
		}
	}

	return m, nil
}

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
// Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods (At/Set) wrap the sentinel with coordinates and method name.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col). NaN and ±Inf are rejected with ErrNaNInf.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[idx] = v

	return nil
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c) time and memory for copy.
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// RawRowView returns row i as a slice backed by the matrix storage.
// Writes through the slice mutate the matrix; the slice is invalid for use
// after SwapRows touches row i. Out-of-range i returns nil.
//
// Intended for elimination kernels working on a private copy: it avoids the
// per-element error plumbing of At/Set in O(n³) inner loops.
// Complexity: O(1).
func (m *Dense) RawRowView(i int) []float64 {
	if i < 0 || i >= m.r {
		return nil
	}

	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c]
}

// SwapRows exchanges rows i and j in place. Swapping a row with itself is a no-op.
// Errors: ErrOutOfRange (wrapped) on invalid indices.
// Complexity: O(c).
func (m *Dense) SwapRows(i, j int) error {
	if i < 0 || i >= m.r || j < 0 || j >= m.r {
		return denseErrorf(ctxSwap, i, j, ErrOutOfRange)
	}
	if i == j {
		return nil
	}
	ri, rj := m.data[i*m.c:(i+1)*m.c], m.data[j*m.c:(j+1)*m.c]
	var k int
	for k = 0; k < m.c; k++ {
		ri[k], rj[k] = rj[k], ri[k]
	}

	return nil
}

// ToRows materializes the matrix as a freshly allocated [][]float64.
// Complexity: O(r*c).
func (m *Dense) ToRows() [][]float64 {
	out := make([][]float64, m.r)
	var i int
	for i = 0; i < m.r; i++ {
		out[i] = make([]float64, m.c)
		copy(out[i], m.data[i*m.c:(i+1)*m.c])
	}

	return out
}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(r*c) for string construction.
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			sb.WriteString(fmt.Sprintf("%g", m.data[i*m.c+j]))
			if j < m.c-1 {
				sb.WriteString(_fmtSep)
			}
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
