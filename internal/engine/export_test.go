package engine

// Export internal functions for testing.
// This file uses the _test.go suffix so it's only included in test builds.

// ExportedNumFrames wraps numFrames for testing.
func ExportedNumFrames(padded, n, hop int) int {
	return numFrames(padded, n, hop)
}

// ExportedResolveProjection wraps resolveProjection for testing.
func ExportedResolveProjection(p Projection, filterLength int) Projection {
	return resolveProjection(p, filterLength)
}

// ProjectForward runs the engine's projector on a single frame.
func (e *Engine[F]) ProjectForward(frame []F) []F {
	dst := make([]F, e.bins)
	e.proj.forward(dst, frame)
	return dst
}

// ProjectInverse runs the engine's inverse projector on a single column.
func (e *Engine[F]) ProjectInverse(column []F) []F {
	dst := make([]F, e.filterLength)
	e.proj.inverse(dst, column)
	return dst
}

// GetPadding returns the applied pad and trim token for an input length.
func (e *Engine[F]) GetPadding(length int) (applied, token Padding) {
	return e.padFor(length)
}
