// Package basis constructs the MDCT cosine kernels as dense matrices.
package basis

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Offset returns the MDCT phase offset n0 = (⌊N/2⌋+1)/2.
func Offset(filterLength int) float64 {
	return float64(filterLength/2+1) / 2
}

// Cosine builds the unwindowed MDCT analysis kernel of shape (N/2, N):
//
//	basis[k,n] = cos((2π/N) · (n + n0) · (k + 0.5))
//
// filterLength must be even and positive; the engine validates it before
// calling here.
func Cosine(filterLength int) *mat.Dense {
	bins := filterLength / 2
	n0 := Offset(filterLength)
	scale := 2 * math.Pi / float64(filterLength)

	data := make([]float64, bins*filterLength)
	for k := range bins {
		row := data[k*filterLength : (k+1)*filterLength]
		freq := float64(k) + 0.5
		for n := range row {
			row[n] = math.Cos(scale * (float64(n) + n0) * freq)
		}
	}

	return mat.NewDense(bins, filterLength, data)
}

// Windowed returns a copy of b with every column n scaled by window[n], so
// the same window applies to each basis row. It panics if the window length
// does not match the column count.
func Windowed(b mat.Matrix, window []float64) *mat.Dense {
	if _, cols := b.Dims(); len(window) != cols {
		panic("basis: window length does not match basis columns")
	}

	var out mat.Dense
	out.Apply(func(_, j int, v float64) float64 {
		return v * window[j]
	}, b)
	return &out
}

// Transpose materializes mᵀ so inverse projection can read contiguous rows.
func Transpose(m mat.Matrix) *mat.Dense {
	return mat.DenseCopyOf(m.T())
}
