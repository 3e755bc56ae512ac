// Package series computes the natural logarithm and the exponential from
// truncated power series instead of delegating to the math package.
//
// 🚀 Why not math.Log / math.Exp?
//
//	The regression and growth engines linearize exponential models through
//	ln/exp. Owning those two primitives keeps every number in a derivation
//	trace reproducible from the formulas shown to the user:
//
//	  ln(x)  = 2 · Σ_{k=0}^{49} z^{2k+1}/(2k+1),   z = (x−1)/(x+1)
//	  exp(x) = Σ_k x^k/k!   (stop when |term| < 1e-15, at most 50 terms)
//
// ✨ Accuracy:
//
//	The logarithm series converges fast only near x = 1 and the Taylor
//	series for exp needs many terms for large |x|. Ln and Exp therefore
//	apply an exact binary argument reduction first (halving/doubling, then
//	adding k·ln2 or squaring back), keeping the fixed term counts above.
//	LnSeries and ExpSeries expose the raw, unreduced series.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/numlab/series"
//
//	series.Ln(10)    // 2.302585092994046
//	series.Exp(1)    // 2.718281828459045
//	series.Log10(1e6) // 6
//
// All functions are pure and safe for concurrent use.
package series
