package mean

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-mean/internal/cpu"
	"github.com/cwbudde/algo-mean/internal/kernel"
	"github.com/cwbudde/algo-mean/internal/kernel/registry"
)

// Strategy reduces a sample sequence to its sum.
type Strategy interface {
	// Name identifies the strategy in reports (e.g., "scalar", "vector/avx").
	Name() string

	// Sum returns the sum of x, or 0 for an empty slice.
	Sum(x []float64) float64
}

// Of returns the mean of x computed by s, or NaN for an empty slice.
func Of(s Strategy, x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return s.Sum(x) / float64(len(x))
}

// Checked is like Of but reports an empty slice as ErrEmptyInput.
func Checked(s Strategy, x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrEmptyInput, s.Name())
	}
	return s.Sum(x) / float64(len(x)), nil
}

type scalarStrategy struct{}

// NewScalar returns the sequential baseline strategy.
func NewScalar() Strategy { return scalarStrategy{} }

func (scalarStrategy) Name() string            { return "scalar" }
func (scalarStrategy) Sum(x []float64) float64 { return scalarSum(x) }

type chunkedStrategy struct {
	size int
}

// NewChunked returns the chunked strategy with the given sub-sequence length.
func NewChunked(size int) (Strategy, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, size)
	}
	return chunkedStrategy{size: size}, nil
}

func (s chunkedStrategy) Name() string            { return fmt.Sprintf("chunked/%d", s.size) }
func (s chunkedStrategy) Sum(x []float64) float64 { return chunkedSum(x, s.size) }

// ChunkSize returns the sub-sequence length.
func (s chunkedStrategy) ChunkSize() int { return s.size }

// vectorStrategy can only be built from an entry that carries a kernel
// supported by the features it was looked up with.
type vectorStrategy struct {
	entry *registry.Entry
}

func (s vectorStrategy) Name() string            { return "vector/" + s.entry.Name }
func (s vectorStrategy) Sum(x []float64) float64 { return kernel.Sum(s.entry, x) }

// Lanes returns the kernel lane width.
func (s vectorStrategy) Lanes() int { return s.entry.Lanes }

// Level returns the instruction set the kernel requires.
func (s vectorStrategy) Level() cpu.SIMDLevel { return s.entry.SIMDLevel }

// NewVectorized returns the wide-vector strategy for the executing CPU, or
// ErrUnsupported when no compatible kernel exists.
func NewVectorized() (Strategy, error) {
	return newVectorizedFor(cpu.DetectFeatures())
}

func newVectorizedFor(features cpu.Features) (Strategy, error) {
	entry := kernel.Lookup(features)
	if !entry.HasKernel() {
		return nil, fmt.Errorf("%w (arch %s)", ErrUnsupported, features.Architecture)
	}
	return vectorStrategy{entry: entry}, nil
}

// Select returns the vectorized strategy when the host supports it and the
// chunked strategy with DefaultChunkSize otherwise. The choice is made on
// every call and is deterministic for a given host.
func Select() Strategy {
	return selectFor(cpu.DetectFeatures())
}

func selectFor(features cpu.Features) Strategy {
	ctx := context.Background()
	log := Logger()

	s, err := newVectorizedFor(features)
	if err != nil {
		if log.Enabled(ctx, slog.LevelDebug) {
			log.DebugContext(ctx, "mean: wide-vector kernel unavailable, using chunked fallback",
				"arch", features.Architecture,
				"force_generic", features.ForceGeneric,
				"chunk_size", DefaultChunkSize)
		}
		return chunkedStrategy{size: DefaultChunkSize}
	}

	if log.Enabled(ctx, slog.LevelDebug) {
		vs := s.(vectorStrategy)
		log.DebugContext(ctx, "mean: selected wide-vector kernel",
			"kernel", vs.entry.Name,
			"level", vs.Level().String(),
			"lanes", vs.Lanes())
	}
	return s
}
