// Package generic provides the pure Go fallback entry of the kernel registry
// and a lane emulation of the wide-vector kernels.
package generic

// LaneSum returns the sum of the first len(x)/lanes*lanes elements of x,
// accumulated exactly like a lanes-wide vector kernel: lane i sums
// x[i], x[i+lanes], ... and the lanes are folded in halves at the end
// (lane i += lane i+half). Remaining tail elements are ignored.
//
// lanes must be a power of two no larger than 16.
func LaneSum(x []float64, lanes int) float64 {
	var acc [16]float64

	blocks := len(x) / lanes
	for b := range blocks {
		block := x[b*lanes : (b+1)*lanes]
		for i, v := range block {
			acc[i] += v
		}
	}

	for width := lanes; width > 1; width /= 2 {
		half := width / 2
		for i := range half {
			acc[i] += acc[i+half]
		}
	}

	return acc[0]
}
