package mdct

import (
	"fmt"
	"sync"

	"github.com/tphakala/go-audio-mdct/internal/engine"
	"gonum.org/v1/gonum/mat"
)

// Transform computes the MDCT and its inverse for a fixed configuration.
// A Transform holds no per-call state and is safe for concurrent use.
type Transform struct {
	config Config
	engine *engine.Engine[float64]

	// float32 engine, built on first use of a Float32 method
	engine32 func() (*engine.Engine[float32], error)
}

func newTransform(config *Config) (*Transform, error) {
	engineConfig := config.engineConfig()

	e, err := engine.New[float64](engineConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build transform: %w", err)
	}

	return &Transform{
		config: *config,
		engine: e,
		engine32: sync.OnceValues(func() (*engine.Engine[float32], error) {
			return engine.New[float32](engineConfig)
		}),
	}, nil
}

// Forward transforms a batch of equal-length signals.
// It returns coefficients indexed [batch][bin][frame] and the Padding that
// Inverse needs to undo the framing pad.
func (t *Transform) Forward(samples [][]float64) (Coefficients, Padding, error) {
	return t.engine.Forward(samples)
}

// Inverse reconstructs a batch of signals from coefficients produced by
// Forward with the same configuration.
func (t *Transform) Inverse(coeffs Coefficients, pad Padding) ([][]float64, error) {
	return t.engine.Inverse(coeffs, pad)
}

// Reconstruct runs Forward followed by Inverse.
func (t *Transform) Reconstruct(samples [][]float64) ([][]float64, error) {
	return t.engine.Reconstruct(samples)
}

// ForwardFloat32 is like Forward but for float32 samples.
func (t *Transform) ForwardFloat32(samples [][]float32) (CoefficientsFloat32, Padding, error) {
	e, err := t.engine32()
	if err != nil {
		return nil, Padding{}, err
	}
	return e.Forward(samples)
}

// InverseFloat32 is like Inverse but for float32 coefficients.
func (t *Transform) InverseFloat32(coeffs CoefficientsFloat32, pad Padding) ([][]float32, error) {
	e, err := t.engine32()
	if err != nil {
		return nil, err
	}
	return e.Inverse(coeffs, pad)
}

// ReconstructFloat32 is like Reconstruct but for float32 samples.
// Projection runs in float32 throughout.
func (t *Transform) ReconstructFloat32(samples [][]float32) ([][]float32, error) {
	e, err := t.engine32()
	if err != nil {
		return nil, err
	}
	return e.Reconstruct(samples)
}

// Window returns a copy of the length-N KBD window.
func (t *Transform) Window() []float64 {
	return t.engine.Window()
}

// ForwardBasis returns a copy of the windowed (N/2 × N) analysis basis.
func (t *Transform) ForwardBasis() *mat.Dense {
	return t.engine.ForwardBasis()
}

// InverseBasis returns a copy of the (N × N/2) synthesis basis.
func (t *Transform) InverseBasis() *mat.Dense {
	return t.engine.InverseBasis()
}

// NumFrames returns the number of frames Forward produces for a signal of
// the given length.
func (t *Transform) NumFrames(length int) int {
	return t.engine.NumFrames(length)
}

// OutputLength returns the signal length Inverse produces after Forward on a
// signal of the given length.
func (t *Transform) OutputLength(length int) int {
	return t.engine.OutputLength(length)
}

// Config returns the configuration the transform was built with.
func (t *Transform) Config() Config {
	return t.config
}

// Info returns information about the transform.
func (t *Transform) Info() Info {
	return Info{
		Algorithm:    "mdct-kbd",
		FilterLength: t.engine.FilterLength(),
		WindowLength: t.engine.WindowLength(),
		HopSize:      t.engine.HopSize(),
		Bins:         t.engine.Bins(),
		Alpha:        t.engine.Alpha(),
		PadMode:      t.engine.PadMode().String(),
		Projection:   t.engine.Projection().String(),
		MemoryUsage:  t.engine.MemoryUsage(),
		SIMDType:     t.engine.SIMDInfo(),
	}
}
