package generic

import (
	"github.com/cwbudde/algo-mean/internal/cpu"
	"github.com/cwbudde/algo-mean/internal/kernel/registry"
)

// init registers the generic entry with the kernel registry.
//
// The generic entry has no kernel. It is selected when no wide-vector kernel
// is compatible with the host (or ForceGeneric is set) and tells the
// dispatcher to take the chunked fallback.
//
// Priority: 0 (lowest - used only when no SIMD alternatives are available)
func init() {
	registry.Global.Register(registry.Entry{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
	})
}
