//go:build amd64 && !purego

package avx

import (
	"github.com/cwbudde/algo-mean/internal/cpu"
	"github.com/cwbudde/algo-mean/internal/kernel/registry"
)

// init registers the AVX sum kernel with the kernel registry.
//
// AVX provides 256-bit floating point operations, four float64 lanes.
// Available on Intel Sandy Bridge (2011+) and AMD Bulldozer (2011+).
//
// Priority: 20 (preferred over generic, lower than AVX-512)
func init() {
	registry.Global.Register(registry.Entry{
		Name:      "avx",
		SIMDLevel: cpu.SIMDAVX,
		Priority:  20,
		Lanes:     Lanes,
		SumBlocks: SumBlocks,
	})
}
