package engine

import (
	"fmt"

	"github.com/tphakala/go-audio-mdct/internal/simdops"
)

// minParallelRows is the smallest batch worth spreading over goroutines.
const minParallelRows = 2

// Padding is the trim token Forward hands to Inverse: the number of samples
// Inverse removes from the front (Left) and back (Right) of its output.
type Padding struct {
	Left  int
	Right int
}

// Coefficients holds MDCT coefficients indexed [batch][bin][frame].
type Coefficients[F simdops.Float] [][][]F

// Shape returns (batch, bins, frames). Bins and frames are read from the
// first row and are zero for an empty batch.
func (c Coefficients[F]) Shape() (batch, bins, frames int) {
	batch = len(c)
	if batch == 0 {
		return 0, 0, 0
	}
	bins = len(c[0])
	if bins > 0 {
		frames = len(c[0][0])
	}
	return batch, bins, frames
}

// validate checks every row has the expected bin count and one shared
// positive frame count, which it returns.
func (c Coefficients[F]) validate(bins int) (int, error) {
	if len(c) == 0 {
		return 0, fmt.Errorf("%w: empty coefficient batch", ErrShapeMismatch)
	}

	frames := -1
	for b, row := range c {
		if len(row) != bins {
			return 0, fmt.Errorf("%w: batch %d has %d frequency bins, want %d",
				ErrShapeMismatch, b, len(row), bins)
		}
		for k, bin := range row {
			if frames < 0 {
				frames = len(bin)
			}
			if len(bin) != frames {
				return 0, fmt.Errorf("%w: batch %d bin %d has %d frames, want %d",
					ErrShapeMismatch, b, k, len(bin), frames)
			}
		}
	}

	if frames <= 0 {
		return 0, fmt.Errorf("%w: coefficients contain no frames", ErrShapeMismatch)
	}
	return frames, nil
}

// batchLength checks the batch is non-empty and rectangular and returns the
// shared signal length.
func batchLength[F simdops.Float](samples [][]F) (int, error) {
	if len(samples) == 0 {
		return 0, fmt.Errorf("%w: empty sample batch", ErrShapeMismatch)
	}
	length := len(samples[0])
	for b, row := range samples {
		if len(row) != length {
			return 0, fmt.Errorf("%w: batch %d has %d samples, want %d",
				ErrShapeMismatch, b, len(row), length)
		}
	}
	return length, nil
}

// numFrames counts the hop-strided frames of length n that fit in padded
// samples: ⌊(padded − n)/hop⌋ + 1, or 0 when not even one fits.
func numFrames(padded, n, hop int) int {
	if padded < n {
		return 0
	}
	return (padded-n)/hop + 1
}

// outputLength is the overlap-added length of frames frames before trimming.
func outputLength(frames, n, hop int) int {
	if frames <= 0 {
		return 0
	}
	return (frames-1)*hop + n
}
