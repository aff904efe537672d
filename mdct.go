package mdct

import (
	"fmt"

	"github.com/tphakala/go-audio-mdct/internal/engine"
)

// Coefficients holds MDCT coefficients indexed [batch][bin][frame]. Each batch
// row has FilterLength/2 bins.
type Coefficients = engine.Coefficients[float64]

// CoefficientsFloat32 is the float32 counterpart of Coefficients.
type CoefficientsFloat32 = engine.Coefficients[float32]

// Padding is the trim token returned by Forward and consumed by Inverse.
type Padding = engine.Padding

// PadMode selects how Forward pads signals before framing.
type PadMode = engine.PadMode

const (
	// PadCentered pads N/2 zeros on each side regardless of signal length.
	PadCentered = engine.PadCentered

	// PadLengthNormalizing pads (length mod N) zeros on each side.
	PadLengthNormalizing = engine.PadLengthNormalizing
)

// Projection selects the frame projection algorithm.
type Projection = engine.Projection

const (
	// ProjectionAuto uses the FFT for long filters and dense products otherwise.
	ProjectionAuto = engine.ProjectionAuto

	// ProjectionDense multiplies each frame by the basis matrix.
	ProjectionDense = engine.ProjectionDense

	// ProjectionFFT computes each frame with an N-point complex FFT.
	ProjectionFFT = engine.ProjectionFFT
)

// Common errors returned by the transform. Match them with errors.Is.
var (
	// ErrInvalidConfiguration indicates invalid construction parameters.
	ErrInvalidConfiguration = engine.ErrInvalidConfiguration

	// ErrShapeMismatch indicates input whose dimensions do not fit the transform.
	ErrShapeMismatch = engine.ErrShapeMismatch
)

// Config holds transform configuration.
type Config struct {
	// FilterLength is the frame length N. Must be even and positive.
	// The transform produces N/2 coefficients per frame at a hop of N/2.
	FilterLength int

	// WindowLength is the KBD edge support W, 0 < W ≤ FilterLength.
	// Set to 0 to use FilterLength (a full-length KBD window).
	WindowLength int

	// PadMode selects how signals are padded before framing.
	PadMode PadMode

	// SavePad makes Forward return the exact length-normalizing pad so that
	// Inverse trims it again. Only meaningful with PadLengthNormalizing.
	SavePad bool

	// Alpha is the KBD shape parameter (β = π·Alpha). Larger values narrow
	// the main lobe's rise. Set to 0 to use DefaultAlpha.
	Alpha float64

	// Projection selects the projector. ProjectionAuto is the zero value.
	Projection Projection

	// EnableParallel enables parallel batch processing.
	// When true, batch rows are transformed concurrently using goroutines.
	// Results are bit-identical to sequential processing.
	EnableParallel bool
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.WindowLength < 0 {
		return fmt.Errorf("%w: window length %d must not be negative", ErrInvalidConfiguration, c.WindowLength)
	}
	engineConfig := c.engineConfig()
	return engineConfig.Validate()
}

// engineConfig resolves zero-valued fields to their defaults.
func (c *Config) engineConfig() engine.Config {
	windowLength := c.WindowLength
	if windowLength == 0 {
		windowLength = c.FilterLength
	}
	alpha := c.Alpha
	if alpha == 0 {
		alpha = DefaultAlpha
	}
	return engine.Config{
		FilterLength: c.FilterLength,
		WindowLength: windowLength,
		Alpha:        alpha,
		PadMode:      c.PadMode,
		SavePad:      c.SavePad,
		Projection:   c.Projection,
		Parallel:     c.EnableParallel,
	}
}

// New creates a transform with the specified configuration.
// The window and basis matrices are built once here.
func New(config *Config) (*Transform, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfiguration)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return newTransform(config)
}

// Info describes a transform.
type Info struct {
	// Algorithm describes the transform in use.
	Algorithm string

	// FilterLength is the frame length N.
	FilterLength int

	// WindowLength is the KBD edge support W.
	WindowLength int

	// HopSize is the frame stride N/2.
	HopSize int

	// Bins is the number of coefficients per frame.
	Bins int

	// Alpha is the KBD shape parameter.
	Alpha float64

	// PadMode is the configured pad mode.
	PadMode string

	// Projection is the projector in use ("dense" or "fft").
	Projection string

	// MemoryUsage is the approximate memory usage in bytes.
	MemoryUsage int64

	// SIMDType describes the SIMD instruction set in use.
	SIMDType string
}
