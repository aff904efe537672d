// Package engine implements the batched MDCT/iMDCT transform pair with a
// Kaiser-Bessel-Derived window and 50% overlap.
package engine

import (
	"fmt"
	"sync"

	"github.com/tphakala/go-audio-mdct/internal/basis"
	"github.com/tphakala/go-audio-mdct/internal/simdops"
	"github.com/tphakala/go-audio-mdct/internal/window"
	"gonum.org/v1/gonum/mat"
)

// Engine computes the MDCT and its inverse for a fixed filter length.
//
// Type parameter F must be float32 or float64 and sets the precision of the
// per-frame projection. The window and basis matrices are computed once in
// New and never change, so a single Engine may be shared between goroutines:
// Forward and Inverse keep all per-call state on the stack or in pooled
// workspaces, and the pad bookkeeping travels in the returned Padding.
type Engine[F simdops.Float] struct {
	filterLength int
	windowLength int
	hop          int
	bins         int
	alpha        float64
	padMode      PadMode
	savePad      bool
	projection   Projection
	parallel     bool

	window       []float64
	forwardBasis *mat.Dense // (N/2 × N), windowed
	inverseBasis *mat.Dense // (N × N/2), transpose of forwardBasis

	proj projector[F]
	ops  *simdops.Ops[F]
}

// New validates cfg and builds the window and basis matrices.
func New[F simdops.Float](cfg Config) (*Engine[F], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w, err := window.KBD(cfg.WindowLength, cfg.FilterLength, cfg.Alpha)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	forward := basis.Windowed(basis.Cosine(cfg.FilterLength), w)
	inverse := basis.Transpose(forward)

	e := &Engine[F]{
		filterLength: cfg.FilterLength,
		windowLength: cfg.WindowLength,
		hop:          cfg.FilterLength / hopDivisor,
		bins:         cfg.FilterLength / hopDivisor,
		alpha:        cfg.Alpha,
		padMode:      cfg.PadMode,
		savePad:      cfg.SavePad,
		projection:   resolveProjection(cfg.Projection, cfg.FilterLength),
		parallel:     cfg.Parallel,
		window:       w,
		forwardBasis: forward,
		inverseBasis: inverse,
		ops:          simdops.For[F](),
	}

	switch e.projection {
	case ProjectionFFT:
		e.proj = newFFTProjector[F](w)
	default:
		e.proj = newDenseProjector[F](forward, inverse)
	}

	return e, nil
}

// Forward transforms a batch of equal-length signals into MDCT coefficients
// of shape (batch, N/2, frames). The returned Padding tells Inverse how much
// to trim from each end of its output.
func (e *Engine[F]) Forward(samples [][]F) (Coefficients[F], Padding, error) {
	length, err := batchLength(samples)
	if err != nil {
		return nil, Padding{}, err
	}

	applied, token := e.padFor(length)
	frames := numFrames(applied.Left+length+applied.Right, e.filterLength, e.hop)
	if frames <= 0 {
		return nil, Padding{}, fmt.Errorf("%w: %d samples padded by %d+%d is shorter than filter length %d",
			ErrShapeMismatch, length, applied.Left, applied.Right, e.filterLength)
	}

	out := make(Coefficients[F], len(samples))
	e.eachRow(len(samples), func(b int) {
		out[b] = e.forwardRow(samples[b], applied, frames)
	})

	return out, token, nil
}

// Inverse reconstructs signals from coefficients of shape (batch, N/2, frames),
// scales them by 4/N and trims pad.Left and pad.Right samples from the ends.
func (e *Engine[F]) Inverse(coeffs Coefficients[F], pad Padding) ([][]F, error) {
	frames, err := coeffs.validate(e.bins)
	if err != nil {
		return nil, err
	}
	if pad.Left < 0 || pad.Right < 0 {
		return nil, fmt.Errorf("%w: negative padding %+v", ErrShapeMismatch, pad)
	}

	out := make([][]F, len(coeffs))
	e.eachRow(len(coeffs), func(b int) {
		out[b] = e.inverseRow(coeffs[b], frames, pad)
	})

	return out, nil
}

// Reconstruct runs Forward followed by Inverse.
func (e *Engine[F]) Reconstruct(samples [][]F) ([][]F, error) {
	coeffs, pad, err := e.Forward(samples)
	if err != nil {
		return nil, err
	}
	return e.Inverse(coeffs, pad)
}

// padFor returns the zero padding Forward applies for an input length and
// the trim token handed to Inverse.
func (e *Engine[F]) padFor(length int) (applied, token Padding) {
	centered := Padding{
		Left:  (e.filterLength + 1) / hopDivisor,
		Right: e.filterLength / hopDivisor,
	}

	if e.padMode == PadCentered {
		return centered, centered
	}

	p := length % e.filterLength
	applied = Padding{Left: p, Right: p}
	if e.savePad {
		return applied, applied
	}
	return applied, centered
}

// forwardRow pads one signal, frames it and projects every frame.
func (e *Engine[F]) forwardRow(signal []F, pad Padding, frames int) [][]F {
	padded := make([]F, pad.Left+len(signal)+pad.Right)
	copy(padded[pad.Left:], signal)

	rows := make([][]F, e.bins)
	backing := make([]F, e.bins*frames)
	for k := range rows {
		rows[k] = backing[k*frames : (k+1)*frames]
	}

	coef := make([]F, e.bins)
	for f := range frames {
		start := f * e.hop
		e.proj.forward(coef, padded[start:start+e.filterLength])
		for k, v := range coef {
			rows[k][f] = v
		}
	}

	return rows
}

// inverseRow synthesizes every frame, overlap-adds at the hop, scales and trims.
func (e *Engine[F]) inverseRow(rows [][]F, frames int, pad Padding) []F {
	total := outputLength(frames, e.filterLength, e.hop)
	acc := make([]F, total)

	column := make([]F, e.bins)
	frame := make([]F, e.filterLength)
	for f := range frames {
		for k := range column {
			column[k] = rows[k][f]
		}
		e.proj.inverse(frame, column)

		dst := acc[f*e.hop : f*e.hop+e.filterLength]
		for i, v := range frame {
			dst[i] += v
		}
	}

	e.ops.Scale(acc, acc, F(inverseScaleNumerator/float64(e.filterLength)))

	start, end := pad.Left, total-pad.Right
	if start >= end {
		return []F{}
	}
	return acc[start:end]
}

// eachRow runs fn for every batch row, concurrently when enabled.
func (e *Engine[F]) eachRow(rows int, fn func(row int)) {
	if !e.parallel || rows < minParallelRows {
		for r := range rows {
			fn(r)
		}
		return
	}

	var wg sync.WaitGroup
	for r := range rows {
		wg.Add(1)
		go func(row int) {
			defer wg.Done()
			fn(row)
		}(r)
	}
	wg.Wait()
}
