// SPDX-License-Identifier: MIT
package growth_test

import (
	"fmt"

	"github.com/katalvlaran/numlab/growth"
)

// ExampleFit fits a trend that doubles every two years.
func ExampleFit() {
	res, err := growth.Fit([]float64{0, 2, 4, 6}, []float64{1000, 2000, 4000, 8000}, []float64{10})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("doubling time: %.2f\n", res.DoublingTime)
	fmt.Printf("N(10) = %.0f\n", res.Predictions[0].Value)
	// Output:
	// doubling time: 2.00
	// N(10) = 32000
}
