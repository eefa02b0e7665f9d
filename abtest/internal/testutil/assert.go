// Package testutil provides shared assertion helpers for the abtest test
// packages.
package testutil

import (
	"math"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertProbability fails unless p is a finite value in [0, 1].
func AssertProbability(t *testing.T, name string, p float64) {
	t.Helper()
	if math.IsNaN(p) || p < 0 || p > 1 {
		t.Errorf("%s: got %v, want a probability in [0, 1]", name, p)
	}
}

// AssertNonDecreasing fails at the first index where values drops by more
// than tol.
func AssertNonDecreasing(t *testing.T, name string, values []float64, tol float64) {
	t.Helper()
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1]-tol {
			t.Errorf("%s: value %d = %v dropped below value %d = %v", name, i, values[i], i-1, values[i-1])
			return
		}
	}
}
