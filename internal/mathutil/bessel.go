// Package mathutil provides the special functions used by window design.
package mathutil

import (
	"math"
)

// BesselI0 computes the modified Bessel function of the first kind, order zero: I₀(x).
// It drives the Kaiser window that the KBD window is derived from.
//
// Two evaluation paths are used:
//   - For |x| ≤ 30: the power series Σ ((x/2)^k / k!)², which has only
//     positive terms and therefore no cancellation
//   - For |x| > 30: the asymptotic polynomial expansion with exponential scaling
//
// KBD windows use β = π·α, so with the customary α ≤ 8 the argument stays
// well inside the series range.
//
// Reference: Abramowitz & Stegun, "Handbook of Mathematical Functions", 9.6.10 and 9.8.2.
func BesselI0(x float64) float64 {
	// I₀ is even
	ax := math.Abs(x)

	if ax <= besselSeriesLimit {
		return besselI0Series(ax)
	}

	// I₀(x) ≈ (eˣ / √x) * P(t) where t = 3.75/x
	t := besselAsympScale / ax
	result := besselI0AsympCoeff0 + t*(besselI0AsympCoeff1+t*(besselI0AsympCoeff2+
		t*(besselI0AsympCoeff3+t*(besselI0AsympCoeff4+t*(besselI0AsympCoeff5+
			t*(besselI0AsympCoeff6+t*(besselI0AsympCoeff7+t*besselI0AsympCoeff8)))))))

	return math.Exp(ax) * result / math.Sqrt(ax)
}

// besselI0Series sums the power series until the next term no longer
// changes the result.
func besselI0Series(ax float64) float64 {
	half := ax / halfDivisor
	sum := 1.0
	term := 1.0

	for k := 1; k <= besselSeriesMaxTerms; k++ {
		f := half / float64(k)
		term *= f * f
		sum += term
		if term < sum*besselSeriesEpsilon {
			break
		}
	}

	return sum
}

// KaiserBetaFromAlpha converts the KBD shape parameter α to the Kaiser β = π·α.
func KaiserBetaFromAlpha(alpha float64) float64 {
	return math.Pi * alpha
}
