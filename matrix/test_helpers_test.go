// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/numlab/matrix"
)

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Use hide{X} in tests to force non-*Dense (fallback) paths.
type hide struct{ matrix.Matrix }

// MustDense ALLOCATES an r×c *Dense or fails the test (fatal on error).
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// NewFilledDense builds an r×c *Dense from row-major vals (len == r*c).
func NewFilledDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	if len(vals) != r*c {
		t.Fatalf("NewFilledDense: len(vals)=%d, want %d", len(vals), r*c)
	}
	m := MustDense(t, r, c)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			MustSet(t, m, i, j, vals[i*c+j])
		}
	}

	return m
}

// MustSet writes m[i,j]=v or fails the test.
func MustSet(t *testing.T, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	if err := m.Set(i, j, v); err != nil {
		t.Fatalf("Set(%d,%d,%v): %v", i, j, v, err)
	}
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// CompareExact asserts m equals want element by element (bitwise float equality).
func CompareExact(t *testing.T, want [][]float64, m matrix.Matrix) {
	t.Helper()
	if m.Rows() != len(want) {
		t.Fatalf("rows: got %d, want %d", m.Rows(), len(want))
	}
	var i, j int
	for i = range want {
		if m.Cols() != len(want[i]) {
			t.Fatalf("cols: got %d, want %d", m.Cols(), len(want[i]))
		}
		for j = range want[i] {
			if got := MustAt(t, m, i, j); got != want[i][j] {
				t.Fatalf("[%d,%d]: got %v, want %v", i, j, got, want[i][j])
			}
		}
	}
}
