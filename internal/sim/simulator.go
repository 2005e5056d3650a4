package sim

import (
	"context"
	"fmt"
	"math"
)

// Simulator advances the exact and approximate force models over a shared
// time grid with identical initial conditions. It owns both trajectories for
// the duration of a run; nothing is shared or mutated concurrently.
type Simulator struct {
	stepper   Stepper
	exact     ForceModel
	approx    ForceModel
	metrics   []Metric
	observers []Observer
}

func New(stepper Stepper, exact, approx ForceModel) *Simulator {
	return &Simulator{
		stepper:   stepper,
		exact:     exact,
		approx:    approx,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates both models and returns the completed trajectories.
// The two models are independent; they are computed sequentially, which is
// sufficient here (single scalar degree of freedom, no shared state).
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validate(cfg); err != nil {
		return nil, err
	}

	n := cfg.Grid().Steps()
	if n <= 1 {
		return nil, fmt.Errorf("%w: duration %g with dt %g yields %d", ErrTooFewSamples, cfg.Duration, cfg.Dt, n)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	exact, err := s.integrate(ctx, s.exact, cfg, n, true)
	if err != nil {
		return nil, err
	}
	approx, err := s.integrate(ctx, s.approx, cfg, n, false)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Exact:      exact,
		Approx:     approx,
		Metrics:    make(map[string]float64),
		StepsTaken: n - 1,
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	s.energyDrift(result)
	s.divergence(result)

	return result, nil
}

// integrate fills one trajectory. Index 0 is seeded explicitly with the
// initial conditions and f(x0); the loop runs from 1 through N-1 inclusive,
// always reading the previous index, so every sample is computed and no
// wrap-around indexing is involved.
func (s *Simulator) integrate(ctx context.Context, f ForceModel, cfg Config, n int, primary bool) (*Trajectory, error) {
	tr := NewTrajectory(n)
	tr.Times[0] = 0
	tr.Pos[0] = cfg.X0
	tr.Vel[0] = cfg.V0
	tr.Acc[0] = f.Accel(cfg.X0)

	if primary {
		s.emit(tr, 0)
	}

	for i := 1; i < n; i++ {
		select {
		case <-ctx.Done():
			return tr, ctx.Err()
		default:
		}

		x, v, a := s.stepper.Step(f, tr.Pos[i-1], tr.Vel[i-1], cfg.Dt)
		tr.Pos[i] = x
		tr.Vel[i] = v
		tr.Acc[i] = a
		tr.Times[i] = float64(i) * cfg.Dt

		if primary {
			s.emit(tr, i)
		}
	}

	return tr, nil
}

func (s *Simulator) emit(tr *Trajectory, i int) {
	for _, m := range s.metrics {
		m.Observe(tr.Times[i], tr.Pos[i], tr.Vel[i], tr.Acc[i])
	}
	for _, obs := range s.observers {
		obs.OnStep(tr.Times[i], tr.Pos[i], tr.Vel[i], tr.Acc[i])
	}
}

func (s *Simulator) validate(cfg Config) error {
	if s.exact == nil || s.approx == nil {
		return ErrMissingModel
	}
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidTimestep, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidDuration, cfg.Duration)
	}
	return nil
}

// energyDrift records the relative drift of the specific energy between the
// first and last sample, per model that exposes an energy.
func (s *Simulator) energyDrift(r *Result) {
	record := func(name string, f ForceModel, tr *Trajectory) {
		em, ok := f.(EnergyModel)
		if !ok {
			return
		}
		last := tr.Len() - 1
		e0 := em.Energy(tr.Pos[0], tr.Vel[0])
		e1 := em.Energy(tr.Pos[last], tr.Vel[last])
		if e0 != 0 {
			r.Metrics["energy_drift_"+name] = math.Abs(e1-e0) / math.Abs(e0)
		}
	}
	record(s.exact.Name(), s.exact, r.Exact)
	record(s.approx.Name(), s.approx, r.Approx)
}

// divergence records how far apart the two position series drift.
func (s *Simulator) divergence(r *Result) {
	maxGap := 0.0
	for i := range r.Exact.Pos {
		gap := math.Abs(r.Exact.Pos[i] - r.Approx.Pos[i])
		if gap > maxGap {
			maxGap = gap
		}
	}
	r.Metrics["divergence_max"] = maxGap
}
