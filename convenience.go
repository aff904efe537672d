package mdct

import "fmt"

// NewDefault creates a transform with a full-length KBD window, centered
// padding and the default alpha.
func NewDefault(filterLength int) (*Transform, error) {
	return New(&Config{FilterLength: filterLength})
}

// NewLengthNormalizing creates a transform that pads by (length mod N) on
// both sides and trims exactly that pad on inverse.
func NewLengthNormalizing(filterLength, windowLength int) (*Transform, error) {
	return New(&Config{
		FilterLength: filterLength,
		WindowLength: windowLength,
		PadMode:      PadLengthNormalizing,
		SavePad:      true,
	})
}

// ForwardMono is a convenience function for transforming a single signal.
// The returned coefficients are indexed [bin][frame].
func ForwardMono(input []float64, filterLength int) ([][]float64, Padding, error) {
	t, err := NewDefault(filterLength)
	if err != nil {
		return nil, Padding{}, err
	}

	coeffs, pad, err := t.Forward([][]float64{input})
	if err != nil {
		return nil, Padding{}, err
	}
	return coeffs[0], pad, nil
}

// InverseMono reverses ForwardMono.
func InverseMono(coeffs [][]float64, filterLength int, pad Padding) ([]float64, error) {
	t, err := NewDefault(filterLength)
	if err != nil {
		return nil, err
	}

	output, err := t.Inverse(Coefficients{coeffs}, pad)
	if err != nil {
		return nil, err
	}
	return output[0], nil
}

// ReconstructMono is a convenience function for a one-shot round trip of a
// single signal. With centered padding the output covers the input rounded
// down to a multiple of filterLength/2.
func ReconstructMono(input []float64, filterLength int) ([]float64, error) {
	t, err := NewDefault(filterLength)
	if err != nil {
		return nil, err
	}

	output, err := t.Reconstruct([][]float64{input})
	if err != nil {
		return nil, err
	}
	return output[0], nil
}

// ReconstructStereo is a convenience function for a one-shot round trip of
// two channels.
func ReconstructStereo(left, right []float64, filterLength int) (leftOut, rightOut []float64, err error) {
	t, err := NewDefault(filterLength)
	if err != nil {
		return nil, nil, err
	}

	output, err := t.Reconstruct([][]float64{left, right})
	if err != nil {
		return nil, nil, err
	}
	return output[0], output[1], nil
}

// ReconstructMonoFloat32 is the float32 equivalent of ReconstructMono.
func ReconstructMonoFloat32(input []float32, filterLength int) ([]float32, error) {
	t, err := NewDefault(filterLength)
	if err != nil {
		return nil, err
	}

	output, err := t.ReconstructFloat32([][]float32{input})
	if err != nil {
		return nil, err
	}
	return output[0], nil
}

// Deinterleave splits interleaved multi-channel samples into a batch with
// one row per channel. Trailing samples that do not fill a whole frame of
// channels are dropped.
// Input format: [C0_0, C1_0, ..., C0_1, C1_1, ...]
func Deinterleave[F ~float32 | ~float64](interleaved []F, channels int) ([][]F, error) {
	if channels < monoChannels || channels > maxChannels {
		return nil, fmt.Errorf("%w: channel count %d out of range [%d, %d]",
			ErrShapeMismatch, channels, monoChannels, maxChannels)
	}

	numSamples := len(interleaved) / channels
	batch := make([][]F, channels)
	for ch := range channels {
		batch[ch] = make([]F, numSamples)
	}

	// Fast path for stereo
	if channels == stereoChannels {
		left, right := batch[0], batch[1]
		for i := range numSamples {
			left[i] = interleaved[i*stereoChannels]
			right[i] = interleaved[i*stereoChannels+1]
		}
		return batch, nil
	}

	for i := range numSamples {
		base := i * channels
		for ch := range channels {
			batch[ch][i] = interleaved[base+ch]
		}
	}
	return batch, nil
}

// Interleave merges a batch into interleaved multi-channel samples. The
// output length is the shortest row times the number of rows.
// Output format: [C0_0, C1_0, ..., C0_1, C1_1, ...]
func Interleave[F ~float32 | ~float64](batch [][]F) []F {
	if len(batch) == 0 {
		return nil
	}

	numSamples := len(batch[0])
	for _, row := range batch[1:] {
		numSamples = min(numSamples, len(row))
	}

	channels := len(batch)
	result := make([]F, numSamples*channels)
	for i := range numSamples {
		base := i * channels
		for ch := range channels {
			result[base+ch] = batch[ch][i]
		}
	}
	return result
}
