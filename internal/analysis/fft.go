// Package analysis provides frequency-domain checks on position series: a
// radix-2 power spectrum and a dominant-frequency estimate to compare against
// the analytic small-oscillation frequency of the ring field.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of data by radix-2 splitting.
// The length must be a power of two; PowerSpectrum enforces that by running
// its input through Pad first, so the panic below is unreachable from package
// callers.
func FFT(data []float64) []complex128 {
	n := len(data)
	out := make([]complex128, n)
	if n <= 1 {
		for i, v := range data {
			out[i] = complex(v, 0)
		}
		return out
	}
	if n&(n-1) != 0 {
		panic("fft: length must be a power of two (see Pad)")
	}

	half := n / 2
	even := make([]float64, half)
	odd := make([]float64, half)
	for i := range even {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	fe := FFT(even)
	fo := FFT(odd)

	for k := 0; k < half; k++ {
		twiddle := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		out[k] = fe[k] + twiddle*fo[k]
		out[k+half] = fe[k] - twiddle*fo[k]
	}
	return out
}

// Pad returns data zero-extended to the next power of two.
func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// PowerSpectrum returns the magnitude of the first half of the transform.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(Pad(data))
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}
