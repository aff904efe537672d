// Package window builds the Kaiser-Bessel-Derived (KBD) window used by the
// MDCT analysis and synthesis bases.
package window

import (
	"math"

	"github.com/tphakala/go-audio-mdct/internal/mathutil"
)

// Kaiser generates a symmetric Kaiser window of the specified length and β parameter.
//
//	w[n] = I₀(β * sqrt(1 - ((n - α)/α)²)) / I₀(β),  α = (length-1)/2
//
// The window is symmetric: w[i] = w[length-1-i], and peaks at 1.0 in the center.
// Lengths below 1 yield an empty window; length 1 yields [1].
func Kaiser(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)
	if length == 1 {
		window[0] = 1.0
		return window
	}

	alpha := float64(length-1) / halfDivisor
	i0Beta := mathutil.BesselI0(beta)

	for n := range length {
		// position relative to center: [-1, 1]
		x := (float64(n) - alpha) / alpha
		window[n] = mathutil.BesselI0(beta*math.Sqrt(math.Max(0, 1.0-x*x))) / i0Beta
	}

	return window
}
