// SPDX-License-Identifier: MIT
package linsolve_test

import (
	"fmt"

	"github.com/katalvlaran/numlab/linsolve"
)

// ExampleSolve solves a 2×2 system with Gaussian elimination.
func ExampleSolve() {
	a := [][]float64{{2, 1}, {1, 3}}
	b := []float64{3, 5}

	res, err := linsolve.Solve(a, b, linsolve.Gauss)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("x = [%.4f, %.4f]\n", res.X[0], res.X[1])
	// Output:
	// x = [0.8000, 1.4000]
}

// ExampleParseMethod selects a method by its user-facing name.
func ExampleParseMethod() {
	m, err := linsolve.ParseMethod("jordan")
	fmt.Println(m, err)

	_, err = linsolve.ParseMethod("qr")
	fmt.Println(err)
	// Output:
	// gauss_jordan <nil>
	// linsolve: unknown method: "qr"
}

// ExampleFormatSystem renders a system the way the solver traces do.
func ExampleFormatSystem() {
	fmt.Println(linsolve.FormatSystem([][]float64{{2, 1}, {1, 3}}, []float64{3, 5}))
	// Output:
	// [   2.0000   1.0000 ] [ x1 ]   [   3.0000 ]
	// [   1.0000   3.0000 ] [ x2 ]   [   5.0000 ]
}
