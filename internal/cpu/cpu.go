// Package cpu provides CPU feature detection for reduction kernel selection.
//
// The wide-vector kernels must never run on a processor that lacks the
// matching instruction set. This package answers that question once per
// process: DetectFeatures queries the hardware on first use and every later
// call returns the same value.
//
// Setting ALGOMEAN_NO_SIMD to a true value (or any non-boolean, non-empty
// string) makes detection report ForceGeneric, which disables every
// wide-vector kernel.
package cpu

import (
	"os"
	"strconv"
	"sync"
)

// EnvNoSIMD is the environment variable that disables wide-vector kernels.
const EnvNoSIMD = "ALGOMEAN_NO_SIMD"

// SIMDLevel represents a SIMD instruction set extension level.
// Levels are not strictly comparable across architectures (e.g., AVX vs NEON).
type SIMDLevel int

const (
	// SIMDNone indicates no SIMD kernel (pure Go fallback).
	SIMDNone SIMDLevel = iota

	// SIMDSSE2 indicates x86-64 SSE2 (baseline for amd64, 128-bit).
	SIMDSSE2

	// SIMDAVX indicates x86-64 AVX (256-bit floating point).
	SIMDAVX

	// SIMDAVX2 indicates x86-64 AVX2.
	SIMDAVX2

	// SIMDAVX512 indicates x86-64 AVX-512 Foundation (512-bit).
	SIMDAVX512

	// SIMDNEON indicates ARM NEON / Advanced SIMD.
	SIMDNEON
)

// String returns a human-readable name for the SIMD level.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "None"
	case SIMDSSE2:
		return "SSE2"
	case SIMDAVX:
		return "AVX"
	case SIMDAVX2:
		return "AVX2"
	case SIMDAVX512:
		return "AVX-512"
	case SIMDNEON:
		return "NEON"
	default:
		return "Unknown"
	}
}

// Features describes CPU capabilities relevant to kernel selection.
type Features struct {
	// x86/amd64 SIMD features
	HasSSE2    bool // Streaming SIMD Extensions 2 (baseline for amd64)
	HasAVX     bool // Advanced Vector Extensions, OS support for YMM state included
	HasAVX2    bool // Advanced Vector Extensions 2
	HasAVX512F bool // AVX-512 Foundation, OS support for ZMM state included

	// ARM SIMD features
	HasNEON bool // ARM Advanced SIMD (NEON)

	// ForceGeneric disables all SIMD kernels.
	ForceGeneric bool

	// Architecture is runtime.GOARCH (e.g., "amd64", "arm64").
	Architecture string
}

// detected runs the hardware query exactly once. The result is never
// written again, so concurrent readers need no further synchronization.
var detected = sync.OnceValue(func() Features {
	f := detectFeaturesImpl()
	f.ForceGeneric = noSIMDEnv()
	return f
})

// DetectFeatures returns the CPU features available on the current system.
//
// Detection is performed on the first call and cached for the lifetime of the
// process. It is safe for concurrent use.
func DetectFeatures() Features {
	return detected()
}

// HasAVX reports whether AVX kernels may run on this host.
func HasAVX() bool {
	f := DetectFeatures()
	return Supports(f, SIMDAVX)
}

// HasAVX512 reports whether AVX-512F kernels may run on this host.
func HasAVX512() bool {
	f := DetectFeatures()
	return Supports(f, SIMDAVX512)
}

// Supports returns true if the given CPU features support the specified SIMD level.
// The kernel registry uses it to decide implementation compatibility.
func Supports(features Features, level SIMDLevel) bool {
	if features.ForceGeneric {
		return level == SIMDNone
	}

	switch level {
	case SIMDNone:
		return true
	case SIMDSSE2:
		return features.HasSSE2
	case SIMDAVX:
		return features.HasAVX
	case SIMDAVX2:
		return features.HasAVX2
	case SIMDAVX512:
		return features.HasAVX512F
	case SIMDNEON:
		return features.HasNEON
	default:
		return false
	}
}

// noSIMDEnv reports whether EnvNoSIMD asks for generic kernels.
func noSIMDEnv() bool {
	val := os.Getenv(EnvNoSIMD)
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
