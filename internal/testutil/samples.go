package testutil

import (
	"math/rand/v2"
	"strconv"
)

// Uniform returns n deterministic samples drawn uniformly from [low, high).
func Uniform(seed uint64, n int, low, high float64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]float64, n)
	for i := range out {
		out[i] = low + rng.Float64()*(high-low)
	}
	return out
}

// Shuffled returns a deterministically permuted copy of x.
func Shuffled(seed uint64, x []float64) []float64 {
	out := append([]float64(nil), x...)
	rng := rand.New(rand.NewPCG(seed, ^seed))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Reversed returns a reversed copy of x.
func Reversed(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[len(x)-1-i] = v
	}
	return out
}

// DC returns a constant-valued sequence.
func DC(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns n ones.
func Ones(n int) []float64 {
	return DC(1, n)
}

// Ramp returns 1, 2, ..., n.
func Ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

// Mixed returns a deterministic sequence of mixed-sign values with
// fractional parts, so lane-order differences show up in the low bits.
func Mixed(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		sign := 1.0
		if i%3 == 0 {
			sign = -1.0
		}
		out[i] = sign * (float64((i*37)%113) + 0.1*float64(i%7))
	}
	return out
}

// SizeName formats a test size as "n=<size>".
func SizeName(n int) string {
	return "n=" + strconv.Itoa(n)
}
