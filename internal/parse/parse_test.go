// SPDX-License-Identifier: MIT
package parse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/numlab/internal/parse"
	"github.com/katalvlaran/numlab/matrix"
)

func TestFloats(t *testing.T) {
	t.Parallel()

	got, err := parse.Floats(" 1, 2.5,3e2 ,-4")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2.5, 300, -4}, got)

	got, err = parse.Floats("7")
	require.NoError(t, err)
	require.Equal(t, []float64{7}, got)

	for _, bad := range []string{"1,,2", "1, x", "NaN", "1,Inf", "2,"} {
		_, err = parse.Floats(bad)
		require.ErrorIs(t, err, parse.ErrSyntax, bad)
	}

	_, err = parse.Floats("   ")
	require.ErrorIs(t, err, parse.ErrEmpty)
}

func TestPair(t *testing.T) {
	t.Parallel()

	x, y, err := parse.Pair("0,1,2", "1,3,5")
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 2}, x)
	require.Equal(t, []float64{1, 3, 5}, y)

	_, _, err = parse.Pair("0,1", "1")
	require.ErrorIs(t, err, parse.ErrLength)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, _, err = parse.Pair("0,a", "1,2")
	require.ErrorIs(t, err, parse.ErrSyntax)
	require.Contains(t, err.Error(), "x: ")
}
