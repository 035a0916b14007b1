package bench

import (
	"math"
	"slices"
	"time"

	"github.com/cwbudde/algo-mean/mean"
	"github.com/cwbudde/algo-vecmath"
)

// Timing summarizes the elapsed times of repeated runs.
type Timing struct {
	Runs   int           `json:"runs"`
	Min    time.Duration `json:"min_ns"`
	Median time.Duration `json:"median_ns"`
	Mean   time.Duration `json:"mean_ns"`
	StdDev time.Duration `json:"stddev_ns"`
}

// Summarize computes Timing for the given run durations.
func Summarize(runs []time.Duration) Timing {
	if len(runs) == 0 {
		return Timing{}
	}

	ns := make([]float64, len(runs))
	for i, d := range runs {
		ns[i] = float64(d.Nanoseconds())
	}
	avg := mean.Scalar(ns)

	dev := make([]float64, len(ns))
	for i, v := range ns {
		dev[i] = v - avg
	}
	sq := make([]float64, len(ns))
	vecmath.MulBlock(sq, dev, dev)
	variance := mean.Scalar(sq)

	sorted := slices.Clone(runs)
	slices.Sort(sorted)
	median := sorted[len(sorted)/2]
	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}

	return Timing{
		Runs:   len(runs),
		Min:    sorted[0],
		Median: median,
		Mean:   time.Duration(avg),
		StdDev: time.Duration(math.Sqrt(variance)),
	}
}

// measure runs fn warmup times untimed, then runs times timed. It returns the
// result of the last run.
func measure(fn func([]float64) float64, x []float64, warmup, runs int) (float64, []time.Duration) {
	var result float64
	for range warmup {
		result = fn(x)
	}

	elapsed := make([]time.Duration, runs)
	for i := range elapsed {
		start := time.Now()
		result = fn(x)
		elapsed[i] = time.Since(start)
	}
	return result, elapsed
}
