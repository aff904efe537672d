// Package mdct provides a batched Modified Discrete Cosine Transform and its
// inverse in pure Go.
//
// The transform pair uses a Kaiser-Bessel-Derived (KBD) analysis/synthesis
// window with 50% frame overlap, so that overlap-adding the inverse of every
// frame reproduces the input exactly (time-domain aliasing cancellation).
//
// # Features
//
//   - Batched processing: every row of a [][]float64 is an independent signal
//   - KBD window with an independent edge support (WindowLength ≤ FilterLength)
//   - Dense SIMD projection via github.com/tphakala/simd for short filters
//   - O(N log N) FFT projection via gonum for long filters
//   - Optional parallel processing of batch rows
//   - Float32 path for ~2x SIMD throughput when 32-bit precision suffices
//   - Pure Go implementation with no CGO dependencies
//
// # Quick Start
//
// For a one-shot round trip:
//
//	output, err := mdct.ReconstructMono(input, mdct.DefaultFilterLength)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For a reusable transform over a batch:
//
//	t, err := mdct.New(&mdct.Config{
//	    FilterLength: 1440,
//	    WindowLength: 480,
//	    PadMode:      mdct.PadLengthNormalizing,
//	    SavePad:      true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	coeffs, pad, err := t.Forward(batch) // coeffs[b][k][f]
//	if err != nil {
//	    log.Fatal(err)
//	}
//	restored, err := t.Inverse(coeffs, pad)
//
// # Framing and Padding
//
// Forward zero-pads each signal, cuts frames of FilterLength (N) samples at a
// hop of N/2 and projects each frame onto N/2 cosine basis functions. The
// number of frames is ⌊(padded − N)/(N/2)⌋ + 1.
//
// Two pad modes are available:
//
//   - [PadCentered]: N/2 zeros on each side. Every input sample is covered by
//     two frames; the output length is the input length rounded down to a
//     multiple of N/2.
//   - [PadLengthNormalizing]: (length mod N) zeros on each side. With
//     [Config.SavePad] the exact pad is handed to Inverse and trimmed again.
//
// Forward returns the trim amounts as a [Padding] value. Passing it to
// Inverse replaces hidden per-call state, so a [Transform] can be shared
// between goroutines.
//
// # Window
//
// The KBD window rises over ⌊W/2⌋ samples from the cumulative sum of a Kaiser
// window with β = π·Alpha. The rest of each half is filled with leading zeros
// and trailing ones, then the half is mirrored. The window satisfies the
// Princen-Bradley condition w[n]² + w[n+N/2]² = 1 when W = N, and whenever
// N/2 − ⌊W/2⌋ is even.
//
// # Scaling
//
// The inverse multiplies the overlap-added synthesis by 4/N. Coefficient
// magnitudes therefore grow with N; they are not orthonormally scaled.
package mdct
