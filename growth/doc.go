// Package growth fits an exponential growth trend N = 10^(a + b·x) to
// positive observations, Moore's-law style.
//
// The observations are linearized with log₁₀ (package series), fitted with
// regression.LinearFit, and projected back with 10^(·). Besides the
// coefficients the Result carries the log-scale squared error, predictions
// at caller-chosen abscissae and the doubling time log₁₀(2)/b.
package growth
