package engine

import (
	"fmt"
	"math"
)

// PadMode selects how Forward pads the input before framing.
type PadMode int

const (
	// PadCentered pads ⌈N/2⌉ zeros in front and ⌊N/2⌋ behind regardless of
	// input length, so every input sample is covered by two frames.
	PadCentered PadMode = iota

	// PadLengthNormalizing pads (length mod N) zeros on both sides.
	PadLengthNormalizing
)

// String returns the flag spelling of the mode.
func (m PadMode) String() string {
	switch m {
	case PadCentered:
		return "centered"
	case PadLengthNormalizing:
		return "normalize"
	default:
		return fmt.Sprintf("PadMode(%d)", int(m))
	}
}

// Projection selects how frames are projected onto the basis.
type Projection int

const (
	// ProjectionAuto picks FFT for long filters and dense otherwise.
	ProjectionAuto Projection = iota

	// ProjectionDense uses per-frame matrix-vector products.
	ProjectionDense

	// ProjectionFFT uses an N-point complex FFT with pre/post twiddles.
	ProjectionFFT
)

// String returns the flag spelling of the projection.
func (p Projection) String() string {
	switch p {
	case ProjectionAuto:
		return "auto"
	case ProjectionDense:
		return "dense"
	case ProjectionFFT:
		return "fft"
	default:
		return fmt.Sprintf("Projection(%d)", int(p))
	}
}

// Config holds the construction-time parameters of an Engine. They are fixed
// for the engine's lifetime.
type Config struct {
	// FilterLength is the frame length N. Must be even and positive.
	FilterLength int

	// WindowLength is the KBD edge support W, 0 < W ≤ N.
	WindowLength int

	// Alpha is the KBD shape parameter (β = π·α). Must be finite and ≥ 0.
	Alpha float64

	// PadMode selects the framing pad.
	PadMode PadMode

	// SavePad makes Forward hand the exact length-normalizing pad to Inverse
	// through the returned Padding. Without it the token carries the centered
	// pad. Ignored in PadCentered mode.
	SavePad bool

	// Projection selects the projector implementation.
	Projection Projection

	// Parallel processes batch rows concurrently. Results are identical to
	// sequential processing.
	Parallel bool
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch {
	case c.FilterLength <= 0:
		return fmt.Errorf("%w: filter length %d must be positive", ErrInvalidConfiguration, c.FilterLength)
	case c.FilterLength%hopDivisor != 0:
		return fmt.Errorf("%w: filter length %d must be even", ErrInvalidConfiguration, c.FilterLength)
	case c.WindowLength <= 0:
		return fmt.Errorf("%w: window length %d must be positive", ErrInvalidConfiguration, c.WindowLength)
	case c.WindowLength > c.FilterLength:
		return fmt.Errorf("%w: window length %d exceeds filter length %d",
			ErrInvalidConfiguration, c.WindowLength, c.FilterLength)
	case c.Alpha < 0 || math.IsNaN(c.Alpha) || math.IsInf(c.Alpha, 0):
		return fmt.Errorf("%w: alpha %v must be finite and non-negative", ErrInvalidConfiguration, c.Alpha)
	case c.PadMode != PadCentered && c.PadMode != PadLengthNormalizing:
		return fmt.Errorf("%w: unknown pad mode %v", ErrInvalidConfiguration, c.PadMode)
	case c.Projection < ProjectionAuto || c.Projection > ProjectionFFT:
		return fmt.Errorf("%w: unknown projection %v", ErrInvalidConfiguration, c.Projection)
	}
	return nil
}

// resolveProjection maps ProjectionAuto to a concrete projector.
func resolveProjection(p Projection, filterLength int) Projection {
	if p != ProjectionAuto {
		return p
	}
	if filterLength >= fftMinFilterLength {
		return ProjectionFFT
	}
	return ProjectionDense
}
