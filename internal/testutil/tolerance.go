package testutil

import (
	"math"
	"testing"
)

// MeanTolerance returns the allowed absolute difference between two means of
// an n-element sequence with the given magnitude:
// 1e-6 * max(|mean|, 1) * max(ln(n), 1).
func MeanTolerance(n int, mean float64) float64 {
	scale := math.Max(math.Abs(mean), 1)
	growth := 1.0
	if n > 1 {
		growth = math.Max(math.Log(float64(n)), 1)
	}
	return 1e-6 * scale * growth
}

// RequireNearlyEqual fails t if got and want differ by more than eps.
// Two NaNs compare equal.
func RequireNearlyEqual(t testing.TB, got, want, eps float64) {
	t.Helper()
	if math.IsNaN(got) && math.IsNaN(want) {
		return
	}
	if diff := math.Abs(got - want); !(diff <= eps) {
		t.Fatalf("got %v, want %v (diff %v > eps %v)", got, want, diff, eps)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
