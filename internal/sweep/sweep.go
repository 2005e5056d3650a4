// Package sweep runs the same physical setup across a grid of step sizes,
// reporting how energy drift and model divergence respond to dt. This is an
// offline parameter study; the step used within any single run stays fixed.
package sweep

import (
	"context"

	"github.com/ringlab/ringsim/internal/field"
	"github.com/ringlab/ringsim/internal/metrics"
	"github.com/ringlab/ringsim/internal/sim"
)

// Point is the outcome of one grid cell.
type Point struct {
	Dt            float64
	Steps         int
	EnergyDrift   float64
	DivergenceMax float64
	PeakExcursion float64
}

// Runner holds the fixed parts of the study: the stepper, the physical
// constants, and the run settings whose Dt gets overridden per cell.
type Runner struct {
	stepper sim.Stepper
	consts  field.Constants
	base    sim.Config
}

func New(stepper sim.Stepper, consts field.Constants, base sim.Config) *Runner {
	return &Runner{stepper: stepper, consts: consts, base: base}
}

// Run evaluates every dt in order. A failed cell aborts the sweep.
func (r *Runner) Run(ctx context.Context, dts []float64) ([]Point, error) {
	points := make([]Point, 0, len(dts))

	for _, dt := range dts {
		exact := field.NewExactRing(r.consts)
		approx := field.NewLinearRing(r.consts)

		s := sim.New(r.stepper, exact, approx)
		drift := metrics.NewEnergyDrift(exact)
		peak := metrics.NewPeakExcursion()
		s.AddMetric(drift)
		s.AddMetric(peak)

		cfg := r.base
		cfg.Dt = dt

		result, err := s.Run(ctx, cfg)
		if err != nil {
			return points, err
		}

		points = append(points, Point{
			Dt:            dt,
			Steps:         result.StepsTaken,
			EnergyDrift:   drift.Value(),
			DivergenceMax: result.Metrics["divergence_max"],
			PeakExcursion: peak.Value(),
		})
	}

	return points, nil
}
