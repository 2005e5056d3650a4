package metrics

import (
	"math"
	"testing"

	"github.com/ringlab/ringsim/internal/sim"
)

// quadEnergy is a harmonic well: E = v²/2 + x²/2.
type quadEnergy struct{}

func (quadEnergy) Energy(x, v float64) float64 { return 0.5*v*v + 0.5*x*x }

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift(quadEnergy{})

	m.Observe(0, 1, 0, 0) // E = 0.5
	if m.Value() != 0 {
		t.Errorf("drift after first sample = %g, want 0", m.Value())
	}

	m.Observe(0.1, 1, 1, 0) // E = 1.0, drift = 1.0
	if got := m.Value(); math.Abs(got-1.0) > 1e-15 {
		t.Errorf("drift = %g, want 1.0", got)
	}

	// A later sample closer to the initial energy must not lower the max.
	m.Observe(0.2, 1, 0.1, 0)
	if got := m.Value(); math.Abs(got-1.0) > 1e-15 {
		t.Errorf("drift regressed to %g", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear the metric")
	}
}

func TestStability(t *testing.T) {
	s := NewStability(1.0)

	for _, x := range []float64{0.5, -0.9, 1.5, 0.1} {
		s.Observe(0, x, 0, 0)
	}
	if got := s.Value(); math.Abs(got-0.75) > 1e-15 {
		t.Errorf("stability = %g, want 0.75", got)
	}

	s.Reset()
	if s.Value() != 1.0 {
		t.Errorf("stability after reset = %g, want 1.0", s.Value())
	}
}

func TestPeakExcursion(t *testing.T) {
	p := NewPeakExcursion()
	for _, x := range []float64{0.1, -2.5, 1.0} {
		p.Observe(0, x, 0, 0)
	}
	if got := p.Value(); got != 2.5 {
		t.Errorf("peak = %g, want 2.5", got)
	}
}

func TestDivergence(t *testing.T) {
	exact := sim.NewTrajectory(4)
	approx := sim.NewTrajectory(4)

	copy(exact.Pos, []float64{0, 1, 2, 3})
	copy(approx.Pos, []float64{0, 1.5, 1.0, 3})

	stats := Divergence(exact, approx)

	if stats.Max != 1.0 {
		t.Errorf("max = %g, want 1.0", stats.Max)
	}
	if stats.Final != 0 {
		t.Errorf("final = %g, want 0", stats.Final)
	}
	wantRMS := math.Sqrt((0.25 + 1.0) / 4)
	if math.Abs(stats.RMS-wantRMS) > 1e-15 {
		t.Errorf("rms = %g, want %g", stats.RMS, wantRMS)
	}
}

func TestDivergenceLengthMismatch(t *testing.T) {
	stats := Divergence(sim.NewTrajectory(3), sim.NewTrajectory(4))
	if stats.Max != 0 || stats.RMS != 0 || stats.Final != 0 {
		t.Errorf("mismatched lengths should yield zero stats, got %+v", stats)
	}
}
