// Package mean computes the arithmetic mean of float64 samples with three
// interchangeable strategies.
//
//   - Scalar: a single sequential accumulator. The correctness baseline.
//   - Vector: wide-register kernels (AVX, AVX-512) over full lane-width
//     blocks plus a scalar tail. Only selected when the executing CPU supports
//     the instruction set; otherwise it fails closed to Chunked.
//   - Chunked: fixed-size sub-sequences summed into independent accumulator
//     slots, structured for instruction-level parallelism without intrinsics.
//
// Summation order differs between strategies, so results agree only within
// floating-point rounding, not bit for bit. Compensated provides a
// Neumaier-compensated reference for measuring that drift.
//
// # Empty input
//
// Every mean function returns NaN for an empty slice, from an explicit length
// check. Checked reports the same condition as ErrEmptyInput.
//
// # Concurrency
//
// All functions are reentrant: inputs are only read and accumulators are
// local. CPU detection runs once per process and is read-only afterwards.
package mean
