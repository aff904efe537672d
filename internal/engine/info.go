package engine

import (
	"github.com/tphakala/simd/cpu"
	"gonum.org/v1/gonum/mat"
)

// FilterLength returns N.
func (e *Engine[F]) FilterLength() int { return e.filterLength }

// WindowLength returns W.
func (e *Engine[F]) WindowLength() int { return e.windowLength }

// HopSize returns the frame stride N/2.
func (e *Engine[F]) HopSize() int { return e.hop }

// Bins returns the number of coefficients per frame, N/2.
func (e *Engine[F]) Bins() int { return e.bins }

// Alpha returns the KBD shape parameter.
func (e *Engine[F]) Alpha() float64 { return e.alpha }

// PadMode returns the configured pad mode.
func (e *Engine[F]) PadMode() PadMode { return e.padMode }

// Projection returns the projector in use, never ProjectionAuto.
func (e *Engine[F]) Projection() Projection { return e.projection }

// Window returns a copy of the length-N KBD window.
func (e *Engine[F]) Window() []float64 {
	return append([]float64(nil), e.window...)
}

// ForwardBasis returns a copy of the windowed (N/2 × N) analysis basis.
func (e *Engine[F]) ForwardBasis() *mat.Dense {
	return mat.DenseCopyOf(e.forwardBasis)
}

// InverseBasis returns a copy of the (N × N/2) synthesis basis.
func (e *Engine[F]) InverseBasis() *mat.Dense {
	return mat.DenseCopyOf(e.inverseBasis)
}

// NumFrames returns how many frames Forward produces for a signal of the
// given length, or 0 if the padded signal is shorter than N.
func (e *Engine[F]) NumFrames(length int) int {
	applied, _ := e.padFor(length)
	return numFrames(applied.Left+length+applied.Right, e.filterLength, e.hop)
}

// OutputLength returns the length Inverse produces for a signal of the given
// length after a Forward on this engine.
func (e *Engine[F]) OutputLength(length int) int {
	frames := e.NumFrames(length)
	_, token := e.padFor(length)
	return max(0, outputLength(frames, e.filterLength, e.hop)-token.Left-token.Right)
}

// MemoryUsage returns the approximate bytes held by the window and bases.
func (e *Engine[F]) MemoryUsage() int64 {
	fr, fc := e.forwardBasis.Dims()
	ir, ic := e.inverseBasis.Dims()
	usage := int64(len(e.window)+fr*fc+ir*ic) * bytesPerFloat64
	return usage + e.proj.memoryUsage()
}

// SIMDInfo describes the SIMD instruction set used by the dot products.
func (e *Engine[F]) SIMDInfo() string {
	return cpu.Info()
}
