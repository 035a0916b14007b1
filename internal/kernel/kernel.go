// Package kernel drives the wide-vector sum kernels.
//
// A kernel reduces full lane-width blocks. The driver splits an input of
// arbitrary length into floor(n/W) full blocks, hands those to the kernel in
// one call so the vector accumulator stays in a register across blocks, and
// adds the n mod W tail elements with scalar additions.
package kernel

import (
	"github.com/cwbudde/algo-mean/internal/cpu"
	"github.com/cwbudde/algo-mean/internal/kernel/registry"
)

// Split is the block/remainder partition of an input for a kernel of a given
// lane width.
type Split struct {
	Lanes  int // lane width W
	Blocks int // number of full blocks, n / W
	Tail   int // remainder elements, n % W
}

// SplitFor partitions n elements into full blocks of lanes elements plus a
// tail. lanes must be positive.
func SplitFor(n, lanes int) Split {
	return Split{
		Lanes:  lanes,
		Blocks: n / lanes,
		Tail:   n % lanes,
	}
}

// Body returns the number of elements covered by full blocks.
func (s Split) Body() int {
	return s.Blocks * s.Lanes
}

// Sum returns the sum of x computed with the kernel of e.
//
// The floor(n/W) full blocks go to e.SumBlocks in a single call covering all
// of them, so the kernel is invoked once (or not at all when there is no full
// block), never once per block. The n mod W tail elements are then added
// with scalar additions.
//
// e must carry a kernel (see registry.Entry.HasKernel) that is supported by
// the executing CPU; Lookup only returns such entries when the features came
// from cpu.DetectFeatures.
func Sum(e *registry.Entry, x []float64) float64 {
	sp := SplitFor(len(x), e.Lanes)
	body := sp.Body()

	var total float64
	if sp.Blocks > 0 {
		total = e.SumBlocks(x[:body:body])
	}
	for _, v := range x[body:] {
		total += v
	}

	return total
}

// Lookup returns the best registered entry for features. The result is the
// generic entry (no kernel) when nothing wider is compatible.
func Lookup(features cpu.Features) *registry.Entry {
	entry := registry.Global.Lookup(features)
	if entry == nil {
		panic("kernel: no implementation registered")
	}
	return entry
}

// Entries lists every kernel entry compiled into this build.
func Entries() []registry.Entry {
	return registry.Global.Entries()
}
