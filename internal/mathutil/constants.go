package mathutil

// Series evaluation limits for I₀.
const (
	besselSeriesLimit    = 30.0  // Largest |x| evaluated with the power series
	besselSeriesMaxTerms = 500   // Hard cap on series terms
	besselSeriesEpsilon  = 1e-17 // Relative size at which a term is negligible
)

// Chebyshev coefficients for I₀(x) large argument approximation
// (Abramowitz & Stegun 9.8.2).
const (
	besselAsympScale = 3.75

	besselI0AsympCoeff0 = 0.39894228
	besselI0AsympCoeff1 = 0.1328592e-1
	besselI0AsympCoeff2 = 0.225319e-2
	besselI0AsympCoeff3 = -0.157565e-2
	besselI0AsympCoeff4 = 0.916281e-2
	besselI0AsympCoeff5 = -0.2057706e-1
	besselI0AsympCoeff6 = 0.2635537e-1
	besselI0AsympCoeff7 = -0.1647633e-1
	besselI0AsympCoeff8 = 0.392377e-2
)

// Common division constants
const (
	halfDivisor = 2.0 // Division by 2
)
