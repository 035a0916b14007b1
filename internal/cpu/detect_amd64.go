//go:build amd64

package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// detectFeaturesImpl performs CPU feature detection on amd64 systems.
//
// golang.org/x/sys/cpu only reports AVX and AVX-512 when the operating system
// also saves the wider register state (XGETBV), so a true flag means the
// instructions are usable, not merely present.
func detectFeaturesImpl() Features {
	return Features{
		HasSSE2:      cpu.X86.HasSSE2,
		HasAVX:       cpu.X86.HasAVX,
		HasAVX2:      cpu.X86.HasAVX2,
		HasAVX512F:   cpu.X86.HasAVX512F,
		Architecture: runtime.GOARCH,
	}
}
