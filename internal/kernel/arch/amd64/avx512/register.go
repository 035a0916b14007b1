//go:build amd64 && !purego

package avx512

import (
	"github.com/cwbudde/algo-mean/internal/cpu"
	"github.com/cwbudde/algo-mean/internal/kernel/registry"
)

// init registers the AVX-512 sum kernel with the kernel registry.
//
// AVX-512F provides 512-bit floating point operations, eight float64 lanes.
//
// Priority: 30 (highest - preferred over AVX and generic when available)
func init() {
	registry.Global.Register(registry.Entry{
		Name:      "avx512",
		SIMDLevel: cpu.SIMDAVX512,
		Priority:  30,
		Lanes:     Lanes,
		SumBlocks: SumBlocks,
	})
}
