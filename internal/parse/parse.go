// SPDX-License-Identifier: MIT

// Package parse converts user-facing text input into numeric vectors.
package parse

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/numlab/matrix"
)

var (
	// ErrEmpty is returned for a blank list.
	ErrEmpty = errors.New("parse: empty list")

	// ErrSyntax is returned for a token that is not a finite decimal number.
	ErrSyntax = errors.New("parse: invalid number")

	// ErrLength is returned by Pair for lists of different lengths.
	ErrLength = fmt.Errorf("parse: %w", matrix.ErrDimensionMismatch)
)

// Floats parses a comma-separated list such as "1, 2.5,3e2".
// Whitespace around tokens is ignored; empty tokens, NaN and ±Inf are rejected.
func Floats(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrEmpty
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		tok := strings.TrimSpace(p)
		if tok == "" {
			return nil, fmt.Errorf("%w: empty token at position %d", ErrSyntax, i+1)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %q at position %d", ErrSyntax, tok, i+1)
		}
		out[i] = v
	}

	return out, nil
}

// Pair parses two lists and checks they have the same length.
func Pair(xs, ys string) (x, y []float64, err error) {
	if x, err = Floats(xs); err != nil {
		return nil, nil, fmt.Errorf("x: %w", err)
	}
	if y, err = Floats(ys); err != nil {
		return nil, nil, fmt.Errorf("y: %w", err)
	}
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%w: x has %d values, y has %d", ErrLength, len(x), len(y))
	}

	return x, y, nil
}
