// Command mdct-wav runs a WAV file through the MDCT and its inverse and
// writes the reconstruction, reporting how closely it matches the input.
//
// Usage:
//
//	mdct-wav input.wav output.wav
//	mdct-wav -filter 1440 -window 480 -pad normalize -save-pad input.wav output.wav
//	mdct-wav -fast input.wav output.wav            # float32 projection
//	mdct-wav -parallel=false input.wav output.wav  # Disable parallel processing
//
// Channels are transformed as one batch. Parallel processing is enabled by
// default and spreads channels across goroutines.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	mdct "github.com/tphakala/go-audio-mdct"
)

const (
	// Buffer size for decoding (number of sample frames per chunk)
	bufferSize = 65536

	// Channel count constants for fast paths
	monoChannels   = 1
	stereoChannels = 2

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16         = 32767.0
	maxInt24         = 8388607.0
	maxInt32         = 2147483647.0
	progressInterval = 10 // Print progress every N%

	// CLI defaults
	defaultFilterLength = 1440
	defaultWindowLength = 480
	minRequiredArgs     = 2
	percentScale        = 100
	decibelScale        = 10

	// WAV format constants
	wavFormatPCM = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Parse command line flags
	filterLength := flag.Int("filter", defaultFilterLength, "Filter (frame) length N, must be even")
	windowLength := flag.Int("window", defaultWindowLength, "KBD window edge length W, 0 < W <= N")
	alpha := flag.Float64("alpha", mdct.DefaultAlpha, "KBD alpha (beta = pi*alpha)")
	padMode := flag.String("pad", "centered", "Pad mode: centered, normalize")
	savePad := flag.Bool("save-pad", false, "Trim the exact length-normalizing pad on inverse")
	projection := flag.String("projection", "auto", "Projection: auto, dense, fft")
	fast := flag.Bool("fast", false, "Use float32 precision (~2x SIMD throughput, sufficient for 16-bit audio)")
	parallel := flag.Bool("parallel", true, "Enable parallel channel processing (faster for stereo/multichannel)")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	flag.Parse()

	// Validate arguments before setting up profiling
	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s input.wav output.wav                           # N=1440, W=480\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -filter 2048 -window 2048 music.wav out.wav    # Full KBD window\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -pad normalize -save-pad speech.wav out.wav    # Keep every sample\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	mode, err := parsePadMode(*padMode)
	if err != nil {
		return err
	}
	proj, err := parseProjection(*projection)
	if err != nil {
		return err
	}

	config := &mdct.Config{
		FilterLength:   *filterLength,
		WindowLength:   *windowLength,
		PadMode:        mode,
		SavePad:        *savePad,
		Alpha:          *alpha,
		Projection:     proj,
		EnableParallel: *parallel,
	}
	transform, err := mdct.New(config)
	if err != nil {
		return err
	}

	// Start CPU profiling if requested (for PGO)
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	inputPath := args[0]
	outputPath := args[1]

	if *verbose {
		info := transform.Info()
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Filter: N=%d, W=%d, hop=%d, alpha=%g", info.FilterLength, info.WindowLength, info.HopSize, info.Alpha)
		log.Printf("Padding: %s (save pad: %v)", info.PadMode, *savePad)
		log.Printf("Projection: %s (SIMD: %s)", info.Projection, info.SIMDType)
		if *fast {
			log.Printf("Precision: float32 (fast mode)")
		} else {
			log.Printf("Precision: float64 (high precision)")
		}
		if *parallel {
			log.Printf("Parallel: enabled (concurrent channel processing)")
		} else {
			log.Printf("Parallel: disabled (sequential processing)")
		}
	}

	// Process the file
	start := time.Now()
	var stats *reconstructStats
	if *fast {
		stats, err = reconstructWAV[float32](transform, inputPath, outputPath, *verbose)
	} else {
		stats, err = reconstructWAV[float64](transform, inputPath, outputPath, *verbose)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	// Print summary
	fmt.Printf("Reconstructed %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz, %d channels, %d-bit\n", stats.rate, stats.channels, stats.bitDepth)
	fmt.Printf("  %d samples -> %d frames -> %d samples\n", stats.inputSamples, stats.frames, stats.outputSamples)
	fmt.Printf("  Max error: %.3g, SNR: %s\n", stats.maxError, formatSNR(stats.snrDB))
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.inputSamples)/float64(stats.rate)/elapsed.Seconds())

	return nil
}

type reconstructStats struct {
	rate          int
	channels      int
	bitDepth      int
	frames        int
	inputSamples  int
	outputSamples int
	maxError      float64
	snrDB         float64
}

func parsePadMode(s string) (mdct.PadMode, error) {
	switch strings.ToLower(s) {
	case "centered", "center":
		return mdct.PadCentered, nil
	case "normalize", "normalizing":
		return mdct.PadLengthNormalizing, nil
	default:
		return 0, fmt.Errorf("unknown pad mode %q (want centered or normalize)", s)
	}
}

func parseProjection(s string) (mdct.Projection, error) {
	switch strings.ToLower(s) {
	case "auto":
		return mdct.ProjectionAuto, nil
	case "dense":
		return mdct.ProjectionDense, nil
	case "fft":
		return mdct.ProjectionFFT, nil
	default:
		return 0, fmt.Errorf("unknown projection %q (want auto, dense or fft)", s)
	}
}

func formatSNR(db float64) string {
	if math.IsInf(db, 1) {
		return "inf (exact)"
	}
	return fmt.Sprintf("%.1f dB", db)
}

// Float constraint for generic processing.
type Float interface {
	float32 | float64
}

func reconstructWAV[F Float](transform *mdct.Transform, inputPath, outputPath string, verbose bool) (*reconstructStats, error) {
	// 1. Open and validate input
	input, err := openWAVInput(inputPath, verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	// 2. Decode every channel into one batch
	batch, err := readChannels[F](input, verbose)
	if err != nil {
		return nil, err
	}

	// 3. Forward and inverse transform
	restored, err := reconstructBatch(transform, batch)
	if err != nil {
		return nil, fmt.Errorf("transform failed: %w", err)
	}

	// 4. Write the reconstruction with the input's format
	if err := writeWAV(outputPath, input.rate, input.bitDepth, restored); err != nil {
		return nil, err
	}

	maxErr, snr := compareChannels(batch, restored)
	stats := &reconstructStats{
		rate:         input.rate,
		channels:     input.channels,
		bitDepth:     input.bitDepth,
		frames:       transform.NumFrames(len(batch[0])),
		inputSamples: len(batch[0]),
		maxError:     maxErr,
		snrDB:        snr,
	}
	if len(restored) > 0 {
		stats.outputSamples = len(restored[0])
	}
	return stats, nil
}

// reconstructBatch dispatches to the float64 or float32 transform path.
func reconstructBatch[F Float](transform *mdct.Transform, batch [][]F) ([][]F, error) {
	switch b := any(batch).(type) {
	case [][]float64:
		out, err := transform.Reconstruct(b)
		if err != nil {
			return nil, err
		}
		return any(out).([][]F), nil
	case [][]float32:
		out, err := transform.ReconstructFloat32(b)
		if err != nil {
			return nil, err
		}
		return any(out).([][]F), nil
	default:
		return nil, fmt.Errorf("unsupported sample type %T", batch)
	}
}

// compareChannels returns the largest absolute sample error and the SNR in dB
// over the samples both batches cover.
func compareChannels[F Float](reference, restored [][]F) (maxErr, snrDB float64) {
	var signal, noise float64
	for ch := range min(len(reference), len(restored)) {
		n := min(len(reference[ch]), len(restored[ch]))
		for i := range n {
			x := float64(reference[ch][i])
			d := x - float64(restored[ch][i])
			signal += x * x
			noise += d * d
			maxErr = max(maxErr, math.Abs(d))
		}
	}

	switch {
	case noise == 0:
		return maxErr, math.Inf(1)
	case signal == 0:
		return maxErr, math.Inf(-1)
	default:
		return maxErr, decibelScale * math.Log10(signal/noise)
	}
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// deinterleaveInto converts interleaved int samples into per-channel buffers
// starting at offset.
func deinterleaveInto[F Float](data []int, channelBufs [][]F, offset, samplesPerChannel int, invMaxVal float64) {
	numChannels := len(channelBufs)

	// Fast path for mono
	if numChannels == monoChannels {
		buf := channelBufs[0][offset:]
		for i := range samplesPerChannel {
			buf[i] = F(float64(data[i]) * invMaxVal)
		}
		return
	}

	// Fast path for stereo
	if numChannels == stereoChannels {
		buf0, buf1 := channelBufs[0][offset:], channelBufs[1][offset:]
		for i := range samplesPerChannel {
			idx := i * stereoChannels
			buf0[i] = F(float64(data[idx]) * invMaxVal)
			buf1[i] = F(float64(data[idx+1]) * invMaxVal)
		}
		return
	}

	// General case
	for i := range samplesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][offset+i] = F(float64(data[base+ch]) * invMaxVal)
		}
	}
}

// interleaveInto converts per-channel float slices into dst, clamping to
// [-1, 1]. Returns the number of elements written, or 0 if dst is too small.
func interleaveInto[F Float](channels [][]F, dst []int, maxVal float64) int {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return 0
	}

	numChannels := len(channels)
	samplesPerChannel := len(channels[0])
	totalLen := samplesPerChannel * numChannels
	if len(dst) < totalLen {
		return 0
	}

	for i := range samplesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			sample := min(max(float64(channels[ch][i]), -1.0), 1.0)
			dst[base+ch] = int(math.Round(sample * maxVal))
		}
	}

	return totalLen
}
