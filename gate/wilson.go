package gate

import "math"

// DefaultZ is the two-sided normal quantile for 95% confidence.
const DefaultZ = 1.96

// WilsonUpper returns the upper bound of the Wilson score interval for a
// binomial proportion, given k adverse outcomes out of n at normal
// quantile z. The Wilson interval stays well-behaved at extreme or small
// proportions where the normal approximation collapses.
//
// n == 0 returns 1.0: with no evidence the bound is worst-case and the
// gate refuses to certify. The result is clamped to 1.0.
func WilsonUpper(k, n int, z float64) float64 {
	if n == 0 {
		return 1.0
	}
	nf := float64(n)
	p := float64(k) / nf

	denominator := 1 + z*z/nf
	center := p + z*z/(2*nf)
	margin := z * math.Sqrt(p*(1-p)/nf+z*z/(4*nf*nf))

	return math.Min((center+margin)/denominator, 1.0)
}
