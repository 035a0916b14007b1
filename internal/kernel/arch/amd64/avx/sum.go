//go:build amd64 && !purego

// Package avx provides the 256-bit AVX sum kernel.
package avx

// Lanes is the number of float64 values held by one YMM register.
const Lanes = 4

// SumBlocks returns the sum of x using AVX instructions.
// len(x) must be a multiple of Lanes; elements past the last full block are
// never read. Returns 0 for an empty slice.
//
// Callers must check cpu.Supports(features, cpu.SIMDAVX) first.
func SumBlocks(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return sumBlocksAVX(x)
}

//go:noescape
func sumBlocksAVX(x []float64) float64
