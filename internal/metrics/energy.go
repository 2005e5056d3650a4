package metrics

import (
	"math"

	"github.com/ringlab/ringsim/internal/sim"
)

// EnergyDrift tracks the worst relative excursion of the specific energy
// from its initial value over a run.
type EnergyDrift struct {
	name    string
	model   sim.EnergyModel
	initial float64
	max     float64
	samples int
}

func NewEnergyDrift(model sim.EnergyModel) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift_max", model: model}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(t, x, v, a float64) {
	energy := e.model.Energy(x, v)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.max = math.Max(e.max, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.max }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.max = 0
	e.samples = 0
}
