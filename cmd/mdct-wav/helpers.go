package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file         *os.File
	decoder      *wav.Decoder
	rate         int
	channels     int
	bitDepth     int
	totalSamples int64
	format       *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	// Open input file
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	// Create WAV decoder
	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	// Read format info
	format := decoder.Format()
	inputRate := format.SampleRate
	channels := format.NumChannels
	bitDepth := int(decoder.BitDepth)

	if !supportedBitDepth(bitDepth) {
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported bit depth %d (want 16, 24 or 32)", bitDepth)
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", inputRate, channels, bitDepth)
	}

	// Get total duration for buffer sizing and progress reporting
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}
	totalSamples := int64(duration.Seconds() * float64(inputRate))

	return &wavInputInfo{
		file:         inputFile,
		decoder:      decoder,
		rate:         inputRate,
		channels:     channels,
		bitDepth:     bitDepth,
		totalSamples: totalSamples,
		format:       format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

func supportedBitDepth(bitDepth int) bool {
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
		return true
	default:
		return false
	}
}

// readChannels decodes the whole file into one normalized row per channel.
func readChannels[F Float](input *wavInputInfo, verbose bool) ([][]F, error) {
	intBuffer := &audio.IntBuffer{
		Data:   make([]int, bufferSize*input.channels),
		Format: input.format,
	}
	invMaxVal := 1.0 / getMaxValue(input.bitDepth)

	capacity := max(int(input.totalSamples), bufferSize)
	channelBufs := make([][]F, input.channels)
	for ch := range channelBufs {
		channelBufs[ch] = make([]F, 0, capacity)
	}

	progress := newProgressTracker(input.totalSamples, verbose)
	var read int64

	for {
		n, err := input.decoder.PCMBuffer(intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		if n == 0 {
			break
		}

		frames := n / input.channels
		offset := len(channelBufs[0])
		for ch := range channelBufs {
			channelBufs[ch] = append(channelBufs[ch], make([]F, frames)...)
		}
		deinterleaveInto(intBuffer.Data[:frames*input.channels], channelBufs, offset, frames, invMaxVal)

		read += int64(frames)
		progress.reportIfNeeded(read)

		// PCMBuffer shrinks Data to the samples it read
		intBuffer.Data = intBuffer.Data[:cap(intBuffer.Data)]
	}

	if len(channelBufs) == 0 || len(channelBufs[0]) == 0 {
		return nil, fmt.Errorf("no audio data in %s", input.file.Name())
	}
	return channelBufs, nil
}

// writeWAV encodes channels as PCM with the given rate and bit depth.
func writeWAV[F Float](path string, sampleRate, bitDepth int, channels [][]F) (err error) {
	if len(channels) == 0 {
		return fmt.Errorf("no channels to write")
	}

	outputFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := outputFile.Close(); err == nil {
			err = closeErr
		}
	}()

	encoder := wav.NewEncoder(outputFile, sampleRate, bitDepth, len(channels), wavFormatPCM)

	data := make([]int, len(channels)*len(channels[0]))
	n := interleaveInto(channels, data, getMaxValue(bitDepth))
	buf := &audio.IntBuffer{
		Data:           data[:n],
		Format:         &audio.Format{NumChannels: len(channels), SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	// Close writes the final chunk sizes into the header
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalSamples int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalSamples int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalSamples: totalSamples,
		verbose:      verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentSamples int64) {
	if !p.verbose || p.totalSamples == 0 {
		return
	}

	progress := int(float64(currentSamples) / float64(p.totalSamples) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Decoding: %d%%", progress)
		p.lastProgress = progress
	}
}
