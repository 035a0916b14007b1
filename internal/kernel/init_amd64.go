//go:build amd64 && !purego

package kernel

// This file imports amd64-specific kernel packages to trigger their init()
// functions, which register the kernels with the global registry.

import (
	// Generic entry (no kernel, selects the fallback)
	_ "github.com/cwbudde/algo-mean/internal/kernel/arch/generic"

	// AMD64 kernels
	_ "github.com/cwbudde/algo-mean/internal/kernel/arch/amd64/avx"
	_ "github.com/cwbudde/algo-mean/internal/kernel/arch/amd64/avx512"
)
