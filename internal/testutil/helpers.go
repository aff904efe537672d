// Package testutil provides reusable test helper functions for MDCT tests.
package testutil

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	WindowTolerance         = 1e-12
	ReconstructionTolerance = 1e-9
	Float32Tolerance        = 1e-4
)

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric at i=%d: s[%d]=%f != s[%d]=%f", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertMonotonic verifies that a slice is monotonically increasing.
func AssertMonotonic(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, "not monotonic",
				"s[%d]=%f < s[%d]=%f", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertCloseSlices verifies equal lengths and a maximum absolute difference
// within tolerance. Only the first offending index is reported.
func AssertCloseSlices(t *testing.T, expected, actual []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if math.Abs(expected[i]-actual[i]) > tolerance {
			return assert.Fail(t, "slices differ",
				"index %d: expected %.12g, got %.12g (tolerance %g)", i, expected[i], actual[i], tolerance)
		}
	}
	return true
}

// MaxAbsDiff returns the largest |a[i]-b[i]| over the common prefix.
func MaxAbsDiff(a, b []float64) float64 {
	n := min(len(a), len(b))
	var worst float64
	for i := range n {
		worst = max(worst, math.Abs(a[i]-b[i]))
	}
	return worst
}

// RandomSignal returns a deterministic uniform signal in [-1, 1).
func RandomSignal(seed uint64, length int) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s := make([]float64, length)
	for i := range s {
		s[i] = 2*rng.Float64() - 1
	}
	return s
}

// RandomBatch returns rows independent random signals of equal length.
func RandomBatch(seed uint64, rows, length int) [][]float64 {
	batch := make([][]float64, rows)
	for r := range rows {
		batch[r] = RandomSignal(seed+uint64(r), length)
	}
	return batch
}

// SineWave generates a sine of the given frequency in cycles per sample.
func SineWave(length int, freq, amplitude float64) []float64 {
	s := make([]float64, length)
	for i := range s {
		s[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i))
	}
	return s
}
