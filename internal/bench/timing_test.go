package bench

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		runs []time.Duration
		want Timing
	}{
		{
			name: "empty",
			runs: nil,
			want: Timing{},
		},
		{
			name: "single",
			runs: []time.Duration{5 * time.Microsecond},
			want: Timing{Runs: 1, Min: 5 * time.Microsecond, Median: 5 * time.Microsecond, Mean: 5 * time.Microsecond},
		},
		{
			name: "odd",
			runs: []time.Duration{30, 10, 20},
			want: Timing{Runs: 3, Min: 10, Median: 20, Mean: 20, StdDev: 8},
		},
		{
			name: "even",
			runs: []time.Duration{40, 10, 30, 20},
			want: Timing{Runs: 4, Min: 10, Median: 25, Mean: 25, StdDev: 11},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.runs); got != tt.want {
				t.Fatalf("Summarize(%v) = %+v, want %+v", tt.runs, got, tt.want)
			}
		})
	}
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	runs := []time.Duration{3, 1, 2}
	Summarize(runs)
	if runs[0] != 3 || runs[1] != 1 || runs[2] != 2 {
		t.Fatalf("input reordered: %v", runs)
	}
}

func TestMeasureCallCount(t *testing.T) {
	calls := 0
	fn := func(x []float64) float64 {
		calls++
		return float64(calls)
	}

	result, elapsed := measure(fn, []float64{1}, 3, 5)
	if calls != 8 {
		t.Fatalf("calls = %d, want 8", calls)
	}
	if len(elapsed) != 5 {
		t.Fatalf("len(elapsed) = %d, want 5", len(elapsed))
	}
	if result != 8 {
		t.Fatalf("result = %v, want last run's value 8", result)
	}
}
