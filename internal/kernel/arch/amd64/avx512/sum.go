//go:build amd64 && !purego

// Package avx512 provides the 512-bit AVX-512F sum kernel.
package avx512

// Lanes is the number of float64 values held by one ZMM register.
const Lanes = 8

// SumBlocks returns the sum of x using AVX-512F instructions.
// len(x) must be a multiple of Lanes; elements past the last full block are
// never read. Returns 0 for an empty slice.
//
// Callers must check cpu.Supports(features, cpu.SIMDAVX512) first.
func SumBlocks(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return sumBlocksAVX512(x)
}

//go:noescape
func sumBlocksAVX512(x []float64) float64
