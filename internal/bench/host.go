package bench

import (
	"runtime"

	"github.com/cwbudde/algo-mean/internal/cpu"
	"github.com/cwbudde/algo-mean/mean"
	"github.com/klauspost/cpuid/v2"
)

// reportedFeatures are the instruction sets listed in the report header.
var reportedFeatures = []cpuid.FeatureID{
	cpuid.SSE2,
	cpuid.AVX,
	cpuid.AVX2,
	cpuid.FMA3,
	cpuid.AVX512F,
	cpuid.ASIMD,
}

// Host describes the machine a report was produced on.
type Host struct {
	Arch          string   `json:"arch"`
	CPU           string   `json:"cpu"`
	Vendor        string   `json:"vendor"`
	Cores         int      `json:"physical_cores"`
	Features      []string `json:"features"`
	WideVector    bool     `json:"wide_vector"`
	ForcedGeneric bool     `json:"forced_generic"`
	Kernel        string   `json:"kernel"`
	Lanes         int      `json:"lanes,omitempty"`
}

// DetectHost collects the host description and the kernel the dispatcher
// selects on it.
func DetectHost() Host {
	h := Host{
		Arch:          runtime.GOARCH,
		CPU:           cpuid.CPU.BrandName,
		Vendor:        cpuid.CPU.VendorString,
		Cores:         cpuid.CPU.PhysicalCores,
		WideVector:    mean.SupportsWideVector(),
		ForcedGeneric: cpu.DetectFeatures().ForceGeneric,
		Kernel:        mean.Select().Name(),
	}
	if h.CPU == "" {
		h.CPU = "unknown"
	}

	for _, id := range reportedFeatures {
		if cpuid.CPU.Supports(id) {
			h.Features = append(h.Features, id.String())
		}
	}

	if v, err := mean.NewVectorized(); err == nil {
		if laned, ok := v.(interface{ Lanes() int }); ok {
			h.Lanes = laned.Lanes()
		}
	}

	return h
}
