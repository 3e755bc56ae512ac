package series

import "math"

const (
	// LnTerms is the fixed number of odd-power terms summed by LnSeries.
	LnTerms = 50

	// ExpTerms caps the number of Taylor terms summed by ExpSeries.
	ExpTerms = 50

	// ExpCutoff stops ExpSeries once the magnitude of the current term drops below it.
	ExpCutoff = 1e-15
)

// ln2 and ln10 are derived from the series itself, never from math.Ln2.
var (
	ln2  = LnSeries(2)
	ln10 = Ln(10)
)

// LnSeries evaluates ln(x) = 2·Σ z^{2k+1}/(2k+1), z = (x−1)/(x+1), with exactly
// LnTerms terms and no argument reduction. It returns NaN for x <= 0.
// Accuracy degrades as x moves away from 1.
func LnSeries(x float64) float64 {
	if !(x > 0) { // also catches NaN
		return math.NaN()
	}
	z := (x - 1) / (x + 1)
	z2 := z * z
	sum, zp := 0.0, z
	var k int
	for k = 0; k < LnTerms; k++ {
		sum += zp / float64(2*k+1)
		zp *= z2
	}

	return 2 * sum
}

// ExpSeries evaluates Σ x^k/k! term by term, stopping once |term| < ExpCutoff
// or after ExpTerms terms, with no argument reduction.
func ExpSeries(x float64) float64 {
	sum, term := 1.0, 1.0
	var k int
	for k = 1; k < ExpTerms; k++ {
		term *= x / float64(k)
		sum += term
		if math.Abs(term) < ExpCutoff {
			break
		}
	}

	return sum
}

// Ln returns the natural logarithm of x.
//
// x is scaled by powers of two into [0.5, 2] (exact in binary floating point),
// so that |z| <= 1/3 and the fixed LnTerms series is accurate to machine
// precision; then ln(x) = LnSeries(m) + k·ln2.
//
// Special cases: Ln(x<=0) = NaN, Ln(NaN) = NaN, Ln(+Inf) = +Inf.
func Ln(x float64) float64 {
	switch {
	case !(x > 0):
		return math.NaN()
	case math.IsInf(x, 1):
		return math.Inf(1)
	}
	k := 0
	for x > 2 {
		x /= 2
		k++
	}
	for x < 0.5 {
		x *= 2
		k--
	}
	r := LnSeries(x)
	if k != 0 {
		r += float64(k) * ln2
	}

	return r
}

// Exp returns e**x.
//
// x is halved s times until |x| <= 1, ExpSeries is evaluated there and the
// result is squared s times: e^x = (e^{x/2^s})^{2^s}.
//
// Special cases: Exp(NaN) = NaN, Exp(+Inf) = +Inf, Exp(-Inf) = 0; large
// arguments overflow to +Inf and very negative ones underflow to 0.
func Exp(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case math.IsInf(x, 1):
		return math.Inf(1)
	case math.IsInf(x, -1):
		return 0
	}
	s := 0
	for x > 1 || x < -1 {
		x /= 2
		s++
	}
	r := ExpSeries(x)
	for ; s > 0; s-- {
		r *= r
	}

	return r
}

// Log10 returns ln(x)/ln(10); NaN for x <= 0.
func Log10(x float64) float64 {
	if !(x > 0) {
		return math.NaN()
	}

	return Ln(x) / ln10
}

// Pow10 returns 10**x computed as exp(x·ln10).
func Pow10(x float64) float64 {
	return Exp(x * ln10)
}
