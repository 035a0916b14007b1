// Package bench runs the mean strategies over a sweep of dataset sizes and
// reports their latency and numerical agreement.
package bench

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-mean/mean"
)

var ErrInvalidConfig = errors.New("bench: invalid config")

// Config controls one benchmark sweep.
type Config struct {
	Sizes     []int   `json:"sizes"`      // dataset lengths, in sweep order
	Warmup    int     `json:"warmup"`     // untimed runs per strategy before measuring
	Runs      int     `json:"runs"`       // timed runs per strategy
	ChunkSize int     `json:"chunk_size"` // sub-sequence length for the chunked strategy
	Seed      uint64  `json:"seed"`       // generator seed; size n uses Seed+n
	Low       float64 `json:"low"`        // lower bound of generated samples (inclusive)
	High      float64 `json:"high"`       // upper bound of generated samples (exclusive)
	FFTCheck  bool    `json:"fft_check"`  // also compute the spectral cross-check
}

// DefaultConfig returns the sweep used when no flags are given: 1e3 to 1e7
// samples in [20, 100), three warm-up runs and five timed runs.
func DefaultConfig() Config {
	return Config{
		Sizes:     []int{1_000, 10_000, 100_000, 1_000_000, 10_000_000},
		Warmup:    3,
		Runs:      5,
		ChunkSize: mean.DefaultChunkSize,
		Seed:      1,
		Low:       20,
		High:      100,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if len(c.Sizes) == 0 {
		return fmt.Errorf("%w: no sizes", ErrInvalidConfig)
	}
	for _, n := range c.Sizes {
		if n < 1 {
			return fmt.Errorf("%w: size %d must be >= 1", ErrInvalidConfig, n)
		}
	}
	if c.Warmup < 0 {
		return fmt.Errorf("%w: warmup %d must be >= 0", ErrInvalidConfig, c.Warmup)
	}
	if c.Runs < 1 {
		return fmt.Errorf("%w: runs %d must be >= 1", ErrInvalidConfig, c.Runs)
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("%w: chunk size %d must be >= 1", ErrInvalidConfig, c.ChunkSize)
	}
	if math.IsNaN(c.Low) || math.IsNaN(c.High) || math.IsInf(c.Low, 0) || math.IsInf(c.High, 0) {
		return fmt.Errorf("%w: sample range must be finite", ErrInvalidConfig)
	}
	if c.Low >= c.High {
		return fmt.Errorf("%w: sample range [%g, %g) is empty", ErrInvalidConfig, c.Low, c.High)
	}

	// The sum of n samples is bounded by n*max(|Low|, |High|).
	largest := slices.Max(c.Sizes)
	bound := math.Max(math.Abs(c.Low), math.Abs(c.High))
	if bound > math.MaxFloat64/float64(largest) {
		return fmt.Errorf("%w: %d samples in [%g, %g) can overflow the float64 sum",
			ErrInvalidConfig, largest, c.Low, c.High)
	}
	return nil
}

// ParseSizes parses a comma-separated size list. Entries accept an optional
// k/m suffix (1k = 1000, 10m = 10000000) and underscores as digit separators.
func ParseSizes(s string) ([]int, error) {
	var sizes []int
	for _, field := range strings.Split(s, ",") {
		field = strings.ToLower(strings.TrimSpace(field))
		if field == "" {
			continue
		}

		mult := 1
		switch {
		case strings.HasSuffix(field, "k"):
			mult, field = 1_000, strings.TrimSuffix(field, "k")
		case strings.HasSuffix(field, "m"):
			mult, field = 1_000_000, strings.TrimSuffix(field, "m")
		}

		n, err := strconv.Atoi(strings.ReplaceAll(field, "_", ""))
		if err != nil {
			return nil, fmt.Errorf("%w: size %q: %v", ErrInvalidConfig, field, err)
		}
		if n < 1 || n > math.MaxInt/mult {
			return nil, fmt.Errorf("%w: size %q out of range", ErrInvalidConfig, field)
		}
		sizes = append(sizes, n*mult)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: no sizes in %q", ErrInvalidConfig, s)
	}
	return sizes, nil
}
