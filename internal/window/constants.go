package window

const (
	// halfDivisor splits a filter into its two halves.
	halfDivisor = 2

	// DefaultAlpha is the KBD shape parameter used by the transform (β = 4π).
	DefaultAlpha = 4.0
)
