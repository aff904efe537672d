package engine

import "errors"

// Errors returned by the transform engine. Callers match them with errors.Is;
// the returned errors carry the offending values as context.
var (
	// ErrInvalidConfiguration indicates a filter/window length relationship
	// or parameter that cannot produce a perfect-reconstruction transform.
	ErrInvalidConfiguration = errors.New("invalid transform configuration")

	// ErrShapeMismatch indicates input whose rank or dimensions violate the
	// transform contract.
	ErrShapeMismatch = errors.New("shape mismatch")
)
