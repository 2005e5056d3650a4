package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ringlab/ringsim/internal/sim"
)

// DivergenceStats summarizes how far the approximate-model positions drift
// from the exact-model positions over a completed run.
type DivergenceStats struct {
	Max   float64 // worst absolute gap
	RMS   float64 // root-mean-square gap
	Final float64 // gap at the last sample
}

// Divergence computes position-gap statistics between two trajectories on
// the same grid. Both must have the same length.
func Divergence(exact, approx *sim.Trajectory) DivergenceStats {
	n := exact.Len()
	if n == 0 || approx.Len() != n {
		return DivergenceStats{}
	}

	diff := make([]float64, n)
	floats.SubTo(diff, exact.Pos, approx.Pos)
	for i, d := range diff {
		diff[i] = math.Abs(d)
	}

	return DivergenceStats{
		Max:   floats.Max(diff),
		RMS:   floats.Norm(diff, 2) / math.Sqrt(float64(n)),
		Final: diff[n-1],
	}
}
