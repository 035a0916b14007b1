package mean

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-mean/internal/cpu"
	"github.com/cwbudde/algo-mean/internal/kernel"
)

// DefaultChunkSize is the sub-sequence length used by Chunked when no valid
// size is given and by the fallback path of Vector.
const DefaultChunkSize = 8

var (
	ErrEmptyInput       = errors.New("mean: empty input")
	ErrInvalidChunkSize = errors.New("mean: chunk size must be >= 1")
	ErrUnsupported      = errors.New("mean: wide-vector kernel not supported on this host")
)

// Scalar returns the mean of x using one sequential accumulator.
// Returns NaN for an empty slice.
func Scalar(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return scalarSum(x) / float64(len(x))
}

// Vector returns the mean of x using the best wide-vector kernel the host
// supports. Without one it returns Chunked(x, DefaultChunkSize).
// Returns NaN for an empty slice.
func Vector(x []float64) float64 {
	return Of(Select(), x)
}

// Chunked returns the mean of x summed in sub-sequences of chunkSize
// elements. A chunkSize below 1 is replaced by DefaultChunkSize.
// Returns NaN for an empty slice.
func Chunked(x []float64, chunkSize int) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	return chunkedSum(x, chunkSize) / float64(len(x))
}

// Compensated returns the mean of x using Neumaier-compensated summation.
// It is slower than the other strategies and serves as the reference for
// measuring their rounding drift. Returns NaN for an empty slice.
func Compensated(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return compensatedSum(x) / float64(len(x))
}

// SupportsWideVector reports whether a wide-vector kernel is compiled into
// this build and can run on the executing CPU. Feature detection is cached;
// the kernel lookup runs on each call.
func SupportsWideVector() bool {
	return kernel.Lookup(cpu.DetectFeatures()).HasKernel()
}

func scalarSum(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v
	}
	return sum
}

// chunkSlots is the number of independent accumulators chunk sums rotate
// through before the final combine.
const chunkSlots = 4

func chunkedSum(x []float64, size int) float64 {
	var slots [chunkSlots]float64

	c := 0
	for start := 0; start < len(x); start += size {
		end := min(start+size, len(x))

		var acc float64
		for _, v := range x[start:end] {
			acc += v
		}

		slots[c%chunkSlots] += acc
		c++
	}

	return (slots[0] + slots[1]) + (slots[2] + slots[3])
}

func compensatedSum(x []float64) float64 {
	var sum, c float64
	for _, v := range x {
		t := sum + v
		if math.Abs(sum) >= math.Abs(v) {
			c += (sum - t) + v
		} else {
			c += (v - t) + sum
		}
		sum = t
	}
	return sum + c
}
