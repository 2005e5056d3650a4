package analysis

import "math"

// DominantFrequency returns the peak of the power spectrum in hertz, given
// the sampling step. The DC bin is skipped. Returns 0 for series too short
// to say anything.
func DominantFrequency(data []float64, dt float64) float64 {
	if len(data) < 4 || dt <= 0 {
		return 0
	}

	ps := PowerSpectrum(data)
	padded := len(ps) * 2

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}

	return float64(maxIdx) / (float64(padded) * dt)
}

// NaturalFrequency is the analytic small-oscillation frequency of the
// attractive ring field in hertz: omega = sqrt(|c|/a³), f = omega/2π.
// Meaningful for c < 0; the magnitude is used so callers can pass either sign.
func NaturalFrequency(c, a float64) float64 {
	omega := math.Sqrt(math.Abs(c) / (a * a * a))
	return omega / (2 * math.Pi)
}
