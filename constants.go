package mdct

import "github.com/tphakala/go-audio-mdct/internal/engine"

// Default transform parameters.
const (
	// DefaultFilterLength is the frame length used by NewDefault and the
	// one-shot helpers.
	DefaultFilterLength = 1024

	// DefaultAlpha is the KBD shape parameter applied when Config.Alpha is 0.
	DefaultAlpha = engine.DefaultAlpha
)

// Channel constants
const (
	monoChannels   = 1   // Batch size of the mono helpers
	stereoChannels = 2   // Stereo channel count (used by interleave functions)
	maxChannels    = 256 // Maximum supported batch size of Interleave/Deinterleave
)
