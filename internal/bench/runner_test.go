package bench

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/cwbudde/algo-mean/internal/testutil"
	"github.com/cwbudde/algo-mean/mean"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Sizes = []int{1, 7, 1_000, 4_099}
	cfg.Warmup = 1
	cfg.Runs = 2
	return cfg
}

func TestRunGenerated(t *testing.T) {
	cfg := smallConfig()
	cfg.FFTCheck = true

	r := &Runner{Config: cfg}
	report, err := r.Run(t.Context(), Generated(cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(report.Steps) != len(cfg.Sizes) {
		t.Fatalf("got %d steps, want %d", len(report.Steps), len(cfg.Sizes))
	}

	wantStrategies := []string{"scalar", "vector", "chunked"}
	for i, step := range report.Steps {
		n := cfg.Sizes[i]
		if step.Size != n {
			t.Fatalf("step %d size = %d, want %d", i, step.Size, n)
		}
		if len(step.Rows) != len(wantStrategies) {
			t.Fatalf("size %d: got %d rows, want %d", n, len(step.Rows), len(wantStrategies))
		}

		eps := testutil.MeanTolerance(n, step.Reference)
		for j, row := range step.Rows {
			if row.Strategy != wantStrategies[j] {
				t.Errorf("size %d row %d strategy = %q, want %q", n, j, row.Strategy, wantStrategies[j])
			}
			if row.Mean < 20 || row.Mean >= 100 {
				t.Errorf("size %d %s: mean %v outside sample range", n, row.Strategy, row.Mean)
			}
			if row.DiffRef > eps {
				t.Errorf("size %d %s: diff from reference %v > %v", n, row.Strategy, row.DiffRef, eps)
			}
			if row.DiffScalar > step.MaxDiff {
				t.Errorf("size %d %s: diff %v exceeds max diff %v", n, row.Strategy, row.DiffScalar, step.MaxDiff)
			}
			if row.Timing.Runs != cfg.Runs {
				t.Errorf("size %d %s: %d timed runs, want %d", n, row.Strategy, row.Timing.Runs, cfg.Runs)
			}
		}

		if step.Rows[0].DiffScalar != 0 {
			t.Errorf("size %d: scalar differs from itself by %v", n, step.Rows[0].DiffScalar)
		}
		if step.Spectral == nil {
			t.Fatalf("size %d: spectral check missing", n)
		}
		if d := math.Abs(*step.Spectral - step.Reference); d > eps {
			t.Errorf("size %d: spectral mean %v, reference %v", n, *step.Spectral, step.Reference)
		}
	}

	if got, want := report.Steps[0].Rows[1].Impl, mean.Select().Name(); got != want {
		t.Errorf("vector impl = %q, want %q", got, want)
	}
	if got := report.Steps[0].Rows[2].Impl; got != "chunked/8" {
		t.Errorf("chunked impl = %q, want chunked/8", got)
	}
}

func TestRunFixed(t *testing.T) {
	x := testutil.DC(42, 513)
	cfg := smallConfig()
	cfg.Sizes = nil

	r := &Runner{Config: cfg}
	report, err := r.Run(t.Context(), Fixed(x))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Steps) != 1 || report.Steps[0].Size != len(x) {
		t.Fatalf("unexpected steps: %+v", report.Steps)
	}
	for _, row := range report.Steps[0].Rows {
		testutil.RequireNearlyEqual(t, row.Mean, 42, 1e-12)
	}
	if report.Steps[0].Spectral != nil {
		t.Fatal("spectral check ran without FFTCheck")
	}
}

func TestRunFixedRejectsOversizedStep(t *testing.T) {
	cfg := smallConfig()
	cfg.Sizes = []int{10}

	r := &Runner{Config: cfg}
	if _, err := r.Run(t.Context(), Fixed([]float64{1, 2, 3})); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Run() error = %v, want ErrInvalidConfig", err)
	}
}

func TestRunRejectsNonFinite(t *testing.T) {
	cfg := smallConfig()
	cfg.Sizes = nil

	r := &Runner{Config: cfg}
	_, err := r.Run(t.Context(), Fixed([]float64{1, math.Inf(1), 3}))
	if !errors.Is(err, ErrNonFinite) {
		t.Fatalf("Run() error = %v, want ErrNonFinite", err)
	}
}

func TestRunRejectsOverflowingSum(t *testing.T) {
	cfg := smallConfig()
	cfg.Sizes = nil

	x := []float64{1.7e308, 1.7e308, 1.7e308}
	testutil.RequireFinite(t, x)

	r := &Runner{Config: cfg}
	report, err := r.Run(t.Context(), Fixed(x))
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("Run() error = %v, want ErrOverflow", err)
	}
	if len(report.Steps) != 0 {
		t.Fatalf("overflowing step was reported: %+v", report.Steps)
	}
}

func TestCheckMean(t *testing.T) {
	if err := checkMean("scalar", 3, 60); err != nil {
		t.Fatalf("checkMean(60) = %v", err)
	}
	for _, m := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		if err := checkMean("vector/avx", 3, m); !errors.Is(err, ErrOverflow) {
			t.Errorf("checkMean(%v) = %v, want ErrOverflow", m, err)
		}
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Runs = 0

	r := &Runner{Config: cfg}
	if _, err := r.Run(t.Context(), Generated(cfg)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Run() error = %v, want ErrInvalidConfig", err)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	cfg := smallConfig()
	r := &Runner{Config: cfg}
	report, err := r.Run(ctx, Generated(cfg))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if report == nil || len(report.Steps) != 0 {
		t.Fatalf("canceled run should return an empty partial report, got %+v", report)
	}
}

func TestSpeedup(t *testing.T) {
	tests := []struct {
		base, d time.Duration
		want    float64
	}{
		{100, 50, 2},
		{50, 100, 0.5},
		{100, 0, 0},
	}
	for _, tt := range tests {
		if got := speedup(tt.base, tt.d); got != tt.want {
			t.Errorf("speedup(%v, %v) = %v, want %v", tt.base, tt.d, got, tt.want)
		}
	}
}
