package engine

import "github.com/tphakala/go-audio-mdct/internal/window"

const (
	// hopDivisor gives the 50% overlap hop: hop = N / 2.
	hopDivisor = 2

	// inverseScaleNumerator normalizes the overlap-added inverse: y *= 4/N.
	inverseScaleNumerator = 4.0

	// fftMinFilterLength is the filter length from which ProjectionAuto picks
	// the FFT projector. Below it the dense SIMD dot products are faster
	// because each frame costs N²/2 multiply-adds against the FFT's fixed
	// pre/post twiddle overhead.
	fftMinFilterLength = 512

	// DefaultAlpha is the KBD shape parameter (β = 4π).
	DefaultAlpha = window.DefaultAlpha
)

// Byte sizes for float types.
const (
	bytesPerFloat32    = 4
	bytesPerFloat64    = 8
	bytesPerComplex128 = 16
)
