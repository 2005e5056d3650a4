package sim

import "math"

// TimeGrid is the shared sampling grid for a run: a fixed step dt over a
// total duration, sampled at t_i = i*dt for i in 0..N-1.
type TimeGrid struct {
	Dt       float64
	Duration float64
}

// Steps returns the sample count N = ceil(duration/dt).
func (g TimeGrid) Steps() int {
	return int(math.Ceil(g.Duration / g.Dt))
}

// Times materializes the sample instants.
func (g TimeGrid) Times() []float64 {
	n := g.Steps()
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = float64(i) * g.Dt
	}
	return ts
}

// Trajectory holds one model's state history. The three series are parallel
// to the TimeGrid: all have length N, index 0 holds the initial conditions.
type Trajectory struct {
	Times []float64
	Pos   []float64
	Vel   []float64
	Acc   []float64
}

func NewTrajectory(n int) *Trajectory {
	return &Trajectory{
		Times: make([]float64, n),
		Pos:   make([]float64, n),
		Vel:   make([]float64, n),
		Acc:   make([]float64, n),
	}
}

func (tr *Trajectory) Len() int { return len(tr.Pos) }

// IsValid reports whether the trajectory is free of NaN/Inf samples.
func (tr *Trajectory) IsValid() bool {
	for i := range tr.Pos {
		if math.IsNaN(tr.Pos[i]) || math.IsInf(tr.Pos[i], 0) ||
			math.IsNaN(tr.Vel[i]) || math.IsInf(tr.Vel[i], 0) {
			return false
		}
	}
	return true
}

// ForceModel is a scalar force law: acceleration as a function of the
// on-axis displacement x. Models are pure and stateless per run.
type ForceModel interface {
	Name() string
	Accel(x float64) float64
}

// EnergyModel is implemented by force models that expose a specific energy
// (per unit mass) for drift checks.
type EnergyModel interface {
	Energy(x, v float64) float64
}

// Configurable is implemented by models with tunable physical parameters.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Stepper advances one sample: given the force law and the previous
// (position, velocity), it produces the next (position, velocity,
// acceleration) for a step dt.
type Stepper interface {
	Name() string
	Step(f ForceModel, x, v, dt float64) (pos, vel, acc float64)
}

// Metric accumulates a scalar observable over the exact-model trajectory.
type Metric interface {
	Name() string
	Observe(t, x, v, a float64)
	Value() float64
	Reset()
}

// Observer receives every exact-model sample as it is produced.
type Observer interface {
	OnStep(t, x, v, a float64)
}

// Config are the per-run integration settings. Both models start from the
// same (X0, V0); the coupling constant and ring radius live in the force
// models themselves.
type Config struct {
	Dt       float64
	Duration float64
	X0       float64
	V0       float64
}

func (c Config) Grid() TimeGrid {
	return TimeGrid{Dt: c.Dt, Duration: c.Duration}
}

// Result is a completed run: one trajectory per force model over the shared
// grid, plus accumulated metrics.
type Result struct {
	Exact      *Trajectory
	Approx     *Trajectory
	Metrics    map[string]float64
	StepsTaken int
}
