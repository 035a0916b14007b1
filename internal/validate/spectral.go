// Package validate provides an independent cross-check for sum results.
//
// The zero-frequency bin of a DFT is the plain sum of its input, so a forward
// FFT computes the sum through a completely different code path (butterflies,
// twiddle factors) than any of the mean strategies.
package validate

import (
	"errors"
	"fmt"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// MaxSpectralLen bounds the input length accepted by SpectralSum; the FFT
// buffers need 32 bytes per padded element.
const MaxSpectralLen = 1 << 24

var (
	ErrEmptyInput = errors.New("validate: empty input")
	ErrTooLarge   = errors.New("validate: input too large for spectral check")
)

// SpectralSum returns the sum of x read from DFT bin 0. The input is
// zero-padded to the next power of two, which leaves bin 0 unchanged.
func SpectralSum(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmptyInput
	}
	if len(x) > MaxSpectralLen {
		return 0, fmt.Errorf("%w: %d > %d", ErrTooLarge, len(x), MaxSpectralLen)
	}

	fftSize := nextPow2(len(x))
	in := make([]complex128, fftSize)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("validate: fft plan for size %d: %w", fftSize, err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return 0, fmt.Errorf("validate: forward fft: %w", err)
	}

	return real(out[0]), nil
}

// SpectralMean returns SpectralSum(x) / len(x).
func SpectralMean(x []float64) (float64, error) {
	sum, err := SpectralSum(x)
	if err != nil {
		return 0, err
	}
	return sum / float64(len(x)), nil
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
