//go:build amd64 && !purego

package avx

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-mean/internal/cpu"
	"github.com/cwbudde/algo-mean/internal/kernel/arch/generic"
	"github.com/cwbudde/algo-mean/internal/testutil"
)

func requireKernel(t testing.TB) {
	t.Helper()
	if !cpu.HasAVX() {
		t.Skip("AVX not available on this host")
	}
}

func TestSumBlocks(t *testing.T) {
	requireKernel(t)

	cases := []struct {
		name string
		x    []float64
		want float64
	}{
		{name: "empty", x: nil, want: 0},
		{name: "zeros", x: make([]float64, 2*Lanes), want: 0},
		{name: "ones", x: testutil.Ones(4 * Lanes), want: 4 * Lanes},
		{name: "ramp", x: testutil.Ramp(Lanes), want: float64(Lanes*(Lanes+1)) / 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SumBlocks(tc.x); got != tc.want {
				t.Fatalf("SumBlocks() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSumBlocksMatchesLaneEmulation(t *testing.T) {
	requireKernel(t)

	for _, blocks := range []int{1, 2, 3, 7, 16, 100, 1023} {
		x := testutil.Mixed(blocks * Lanes)
		got := SumBlocks(x)
		want := generic.LaneSum(x, Lanes)
		if got != want {
			t.Fatalf("blocks=%d: SumBlocks() = %v, want bit-exact %v", blocks, got, want)
		}
	}
}

func TestSumBlocksStaysInBounds(t *testing.T) {
	requireKernel(t)

	// Poison everything outside the view. Any read past the last full block
	// turns the result into NaN. The offset breaks vector alignment.
	for _, offset := range []int{0, 1, 3} {
		for _, n := range []int{Lanes, 2 * Lanes, 5*Lanes + 1, 9*Lanes + Lanes - 1} {
			buf := testutil.Mixed(offset + n + 2*Lanes)
			for i := range offset {
				buf[i] = math.NaN()
			}
			body := n / Lanes * Lanes
			for i := offset + body; i < len(buf); i++ {
				buf[i] = math.NaN()
			}

			got := SumBlocks(buf[offset : offset+n])
			want := generic.LaneSum(buf[offset:offset+body], Lanes)
			if math.IsNaN(got) {
				t.Fatalf("offset=%d n=%d: kernel read outside its blocks", offset, n)
			}
			if got != want {
				t.Fatalf("offset=%d n=%d: SumBlocks() = %v, want %v", offset, n, got, want)
			}
		}
	}
}

func BenchmarkSumBlocks(b *testing.B) {
	requireKernel(b)

	for _, n := range []int{64, 1024, 65536} {
		x := testutil.Mixed(n)
		b.Run(testutil.SizeName(n), func(b *testing.B) {
			b.SetBytes(int64(n * 8))
			for i := 0; i < b.N; i++ {
				_ = SumBlocks(x)
			}
		})
	}
}
