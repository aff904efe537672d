package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-audio-mdct/internal/mathutil"
	"github.com/tphakala/simd/f64"
)

// ErrInvalidLength is returned when the window or filter length cannot
// produce a KBD window.
var ErrInvalidLength = errors.New("invalid window length")

// RisingHalf returns the rising edge of a KBD window with support
// windowLength: the normalized cumulative sum of a Kaiser window of length
// ⌊windowLength/2⌋+1 with β = π·alpha, square-rooted. The result has
// ⌊windowLength/2⌋ samples and increases monotonically towards 1.
func RisingHalf(windowLength int, alpha float64) []float64 {
	half := windowLength / halfDivisor
	if half <= 0 {
		return []float64{}
	}

	kaiser := Kaiser(half+1, mathutil.KaiserBetaFromAlpha(alpha))

	cumulative := make([]float64, len(kaiser))
	var acc float64
	for i, v := range kaiser {
		acc += v
		cumulative[i] = acc
	}

	// The last cumulative value is the normalizer and is dropped.
	rising := cumulative[:half]
	f64.Scale(rising, rising, 1.0/acc)
	for i, v := range rising {
		rising[i] = math.Sqrt(v)
	}

	return rising
}

// KBD builds a Kaiser-Bessel-Derived window of length filterLength whose
// rising and falling edges span windowLength samples.
//
// The half window is laid out as [zeros | rising edge | ones] and mirrored.
// The N/2 − ⌊W/2⌋ samples left over in each half are split into ⌈·/2⌉
// leading zeros and ⌊·/2⌋ trailing ones, so the flat top sits in the middle
// of the filter and the window still satisfies Princen-Bradley whenever the
// leftover is even (always true for W = N).
func KBD(windowLength, filterLength int, alpha float64) ([]float64, error) {
	if err := validate(windowLength, filterLength, alpha); err != nil {
		return nil, err
	}

	rising := RisingHalf(windowLength, alpha)

	halfLen := filterLength / halfDivisor
	leftover := halfLen - len(rising)
	zeros := (leftover + 1) / halfDivisor
	ones := leftover / halfDivisor

	w := make([]float64, filterLength)
	copy(w[zeros:], rising)
	for i := zeros + len(rising); i < zeros+len(rising)+ones; i++ {
		w[i] = 1.0
	}

	// mirror
	for i := range halfLen {
		w[filterLength-1-i] = w[i]
	}

	return w, nil
}

func validate(windowLength, filterLength int, alpha float64) error {
	switch {
	case filterLength <= 0:
		return fmt.Errorf("%w: filter length %d must be positive", ErrInvalidLength, filterLength)
	case filterLength%halfDivisor != 0:
		return fmt.Errorf("%w: filter length %d must be even", ErrInvalidLength, filterLength)
	case windowLength <= 0:
		return fmt.Errorf("%w: window length %d must be positive", ErrInvalidLength, windowLength)
	case windowLength > filterLength:
		return fmt.Errorf("%w: window length %d exceeds filter length %d", ErrInvalidLength, windowLength, filterLength)
	case alpha < 0 || math.IsNaN(alpha) || math.IsInf(alpha, 0):
		return fmt.Errorf("%w: alpha %v must be finite and non-negative", ErrInvalidLength, alpha)
	}
	return nil
}

// PrincenBradleyError returns max |w[n]² + w[n+N/2]² − 1| over the first
// half of w. A perfect-reconstruction window returns ~0.
func PrincenBradleyError(w []float64) float64 {
	half := len(w) / halfDivisor
	var worst float64
	for n := range half {
		a, b := w[n], w[n+half]
		worst = math.Max(worst, math.Abs(a*a+b*b-1))
	}
	return worst
}

// Energy returns Σ w[n]². For a Princen-Bradley window of length N it is N/2.
func Energy(w []float64) float64 {
	if len(w) == 0 {
		return 0
	}
	return f64.DotProduct(w, w)
}
