// Package registry provides the implementation registry for sum kernels.
//
// Each architecture-specific kernel package registers an Entry from its
// init() function. At runtime the kernel package asks the registry for the
// highest-priority entry compatible with the detected CPU features.
//
// The generic entry carries no kernel. Selecting it means that no wide-vector
// kernel can run on this host or build, and callers must take their fallback.
package registry

import (
	"sort"
	"sync"

	"github.com/cwbudde/algo-mean/internal/cpu"
)

// Entry represents a registered sum kernel.
type Entry struct {
	// Name is a human-readable identifier for this implementation (e.g., "avx", "avx512").
	Name string

	// SIMDLevel indicates the instruction set required to run SumBlocks.
	SIMDLevel cpu.SIMDLevel

	// Priority determines selection order when multiple compatible entries exist.
	// Higher priority entries are preferred. Suggested priorities:
	//   - Generic (SIMDNone): 0
	//   - AVX: 20
	//   - AVX-512: 30
	Priority int

	// Lanes is the number of float64 values processed per wide instruction.
	Lanes int

	// SumBlocks returns the sum of x, where len(x) is a multiple of Lanes.
	// The lanes accumulate in one vector register and are reduced to a scalar
	// once, after the last block. Nil for the generic entry.
	SumBlocks func(x []float64) float64
}

// HasKernel reports whether e carries a wide-vector kernel.
func (e *Entry) HasKernel() bool {
	return e != nil && e.SIMDLevel != cpu.SIMDNone && e.SumBlocks != nil && e.Lanes > 0
}

// Registry manages the registration and lookup of sum kernels.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry // sorted by priority, descending
}

// Global is the default registry instance used by the kernel package.
var Global = &Registry{}

// Register adds an implementation to the registry.
//
// It is typically called from init() functions in architecture-specific
// packages. It is safe to call concurrently with Lookup.
func (r *Registry) Register(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].Priority > r.entries[j].Priority
	})
}

// Lookup finds the best implementation for the given CPU features.
//
// Returns the highest-priority compatible entry, or nil if nothing compatible
// is registered (which cannot happen once the generic entry is registered).
func (r *Registry) Lookup(features cpu.Features) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if cpu.Supports(features, r.entries[i].SIMDLevel) {
			e := r.entries[i]
			return &e
		}
	}

	return nil
}

// Entries returns a copy of all registered entries, sorted by priority.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Reset clears all registered entries.
// This function is intended for testing purposes only.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
}
