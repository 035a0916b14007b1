//go:build !amd64 || purego

package kernel

// Architectures without a wide-vector sum kernel, and purego builds, only
// register the generic entry.

import (
	_ "github.com/cwbudde/algo-mean/internal/kernel/arch/generic"
)
