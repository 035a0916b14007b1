package bench

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cwbudde/algo-mean/internal/validate"
	"github.com/cwbudde/algo-mean/mean"
)

// Source supplies the samples for each sweep step.
type Source interface {
	// Sizes returns the dataset lengths to sweep.
	Sizes() []int

	// Samples returns n samples. The runner only reads them.
	Samples(n int) ([]float64, error)
}

type generatedSource struct {
	cfg Config
}

// Generated returns a Source that generates cfg.Sizes datasets on demand.
// Size n is generated with seed cfg.Seed+n, so every size is reproducible
// on its own.
func Generated(cfg Config) Source {
	return generatedSource{cfg: cfg}
}

func (s generatedSource) Sizes() []int { return s.cfg.Sizes }

func (s generatedSource) Samples(n int) ([]float64, error) {
	return Generate(n, s.cfg.Seed+uint64(n), s.cfg.Low, s.cfg.High), nil
}

type fixedSource struct {
	x []float64
}

// Fixed returns a Source with a single step over all of x.
func Fixed(x []float64) Source {
	return fixedSource{x: x}
}

func (s fixedSource) Sizes() []int { return []int{len(s.x)} }

func (s fixedSource) Samples(n int) ([]float64, error) {
	if n > len(s.x) {
		return nil, fmt.Errorf("%w: size %d exceeds dataset length %d", ErrInvalidConfig, n, len(s.x))
	}
	return s.x[:n], nil
}

// Row is the measurement of one strategy at one size.
type Row struct {
	Size       int     `json:"size"`
	Strategy   string  `json:"strategy"`
	Impl       string  `json:"impl"`
	Mean       float64 `json:"mean"`
	DiffScalar float64 `json:"diff_scalar"`
	DiffRef    float64 `json:"diff_reference"`
	Speedup    float64 `json:"speedup"`
	Timing     Timing  `json:"timing"`
}

// Step groups the rows of one dataset size.
type Step struct {
	Size      int      `json:"size"`
	Reference float64  `json:"reference_mean"`
	Spectral  *float64 `json:"spectral_mean,omitempty"`
	MaxDiff   float64  `json:"max_diff"`
	Rows      []Row    `json:"rows"`
}

// Report is the result of a sweep.
type Report struct {
	Host   Host   `json:"host"`
	Config Config `json:"config"`
	Steps  []Step `json:"steps"`
}

// Runner executes benchmark sweeps.
type Runner struct {
	Config Config
	Logger *slog.Logger // nil disables progress logging
}

type candidate struct {
	strategy string
	impl     string
	fn       func([]float64) float64
}

// Run sweeps the sizes of src. Cancellation is checked between sizes.
func (r *Runner) Run(ctx context.Context, src Source) (*Report, error) {
	cfg := r.Config
	if len(cfg.Sizes) == 0 {
		cfg.Sizes = src.Sizes()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := r.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	// Resolve the vector strategy once so selection and its debug logging
	// stay out of the timed runs.
	vector := mean.Select()
	chunkSize := cfg.ChunkSize
	candidates := []candidate{
		{"scalar", "scalar", mean.Scalar},
		{"vector", vector.Name(), func(x []float64) float64 {
			return mean.Of(vector, x)
		}},
		{"chunked", fmt.Sprintf("chunked/%d", chunkSize), func(x []float64) float64 {
			return mean.Chunked(x, chunkSize)
		}},
	}

	report := &Report{Host: DetectHost(), Config: cfg}

	for _, n := range cfg.Sizes {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		x, err := src.Samples(n)
		if err != nil {
			return report, err
		}
		if err := CheckFinite(x); err != nil {
			return report, err
		}

		start := time.Now()
		step, err := r.runStep(ctx, log, cfg, candidates, x)
		if err != nil {
			return report, err
		}
		report.Steps = append(report.Steps, step)

		log.InfoContext(ctx, "bench: size done",
			"size", n,
			"max_diff", step.MaxDiff,
			"elapsed", time.Since(start))
	}

	return report, nil
}

func (r *Runner) runStep(ctx context.Context, log *slog.Logger, cfg Config, candidates []candidate, x []float64) (Step, error) {
	n := len(x)
	step := Step{
		Size:      n,
		Reference: mean.Compensated(x),
	}
	if err := checkMean("reference", n, step.Reference); err != nil {
		return step, err
	}

	var scalarMean float64
	var scalarMedian time.Duration
	for i, c := range candidates {
		result, elapsed := measure(c.fn, x, cfg.Warmup, cfg.Runs)
		if err := checkMean(c.impl, n, result); err != nil {
			return step, err
		}
		timing := Summarize(elapsed)

		if i == 0 {
			scalarMean, scalarMedian = result, timing.Median
		}

		row := Row{
			Size:       n,
			Strategy:   c.strategy,
			Impl:       c.impl,
			Mean:       result,
			DiffScalar: math.Abs(result - scalarMean),
			DiffRef:    math.Abs(result - step.Reference),
			Speedup:    speedup(scalarMedian, timing.Median),
			Timing:     timing,
		}
		step.MaxDiff = math.Max(step.MaxDiff, row.DiffScalar)
		step.Rows = append(step.Rows, row)
	}

	if cfg.FFTCheck {
		spectral, err := validate.SpectralMean(x)
		if err != nil {
			log.WarnContext(ctx, "bench: spectral check skipped", "size", n, "err", err)
		} else {
			step.Spectral = &spectral
		}
	}

	return step, nil
}

// checkMean rejects a non-finite mean. Samples are checked finite before the
// step runs, so only an overflowing sum gets here.
func checkMean(impl string, n int, m float64) error {
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return fmt.Errorf("%w: %s mean of %d samples is %v", ErrOverflow, impl, n, m)
	}
	return nil
}

// speedup returns base/d, or 0 when d is too short to measure.
func speedup(base, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(base) / float64(d)
}
