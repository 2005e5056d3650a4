package sim

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

// stubModel is a linear restoring force, enough to exercise the run loop.
type stubModel struct {
	k float64
}

func (s *stubModel) Name() string           { return "stub" }
func (s *stubModel) Accel(x float64) float64 { return -s.k * x }

// stubStepper is a plain semi-implicit step.
type stubStepper struct{}

func (stubStepper) Name() string { return "stub" }

func (stubStepper) Step(f ForceModel, x, v, dt float64) (float64, float64, float64) {
	a := f.Accel(x)
	v += a * dt
	x += v * dt
	return x, v, a
}

func newTestSimulator() *Simulator {
	return New(stubStepper{}, &stubModel{k: 9}, &stubModel{k: 8})
}

func TestRunLengthsAndSeeding(t *testing.T) {
	s := newTestSimulator()
	cfg := Config{Dt: 0.1, Duration: 1.0, X0: 0.25, V0: -0.5}

	result, err := s.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for name, tr := range map[string]*Trajectory{"exact": result.Exact, "approx": result.Approx} {
		if tr.Len() != 10 {
			t.Errorf("%s: length = %d, want 10", name, tr.Len())
		}
		if len(tr.Times) != 10 || len(tr.Vel) != 10 || len(tr.Acc) != 10 {
			t.Errorf("%s: series lengths are not parallel", name)
		}
		if tr.Pos[0] != 0.25 || tr.Vel[0] != -0.5 {
			t.Errorf("%s: index 0 = (%g, %g), want (0.25, -0.5)", name, tr.Pos[0], tr.Vel[0])
		}
		if tr.Times[9] != 0.9 {
			t.Errorf("%s: last instant = %g, want 0.9", name, tr.Times[9])
		}
		// The loop runs through the final index: the last sample must be
		// computed, not left at its zero value.
		if tr.Pos[9] == 0 && tr.Vel[9] == 0 && tr.Acc[9] == 0 {
			t.Errorf("%s: final sample left unset", name)
		}
	}

	if got, want := result.Exact.Acc[0], -9*0.25; got != want {
		t.Errorf("exact acc[0] = %g, want %g", got, want)
	}
	if got, want := result.Approx.Acc[0], -8*0.25; got != want {
		t.Errorf("approx acc[0] = %g, want %g", got, want)
	}
	if result.StepsTaken != 9 {
		t.Errorf("steps taken = %d, want 9", result.StepsTaken)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"zero dt", Config{Dt: 0, Duration: 1}, ErrInvalidTimestep},
		{"negative dt", Config{Dt: -0.1, Duration: 1}, ErrInvalidTimestep},
		{"zero duration", Config{Dt: 0.1, Duration: 0}, ErrInvalidDuration},
		{"negative duration", Config{Dt: 0.1, Duration: -1}, ErrInvalidDuration},
		{"single sample", Config{Dt: 1.0, Duration: 0.5}, ErrTooFewSamples},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestSimulator().Run(context.Background(), tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunMissingModel(t *testing.T) {
	s := New(stubStepper{}, nil, nil)
	_, err := s.Run(context.Background(), Config{Dt: 0.1, Duration: 1})
	if !errors.Is(err, ErrMissingModel) {
		t.Errorf("got %v, want ErrMissingModel", err)
	}
}

func TestRunDeterminism(t *testing.T) {
	cfg := Config{Dt: 0.001, Duration: 2.0, X0: 0.1}

	first, err := newTestSimulator().Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := newTestSimulator().Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(first.Exact, second.Exact) {
		t.Error("exact trajectories differ between identical runs")
	}
	if !reflect.DeepEqual(first.Approx, second.Approx) {
		t.Error("approx trajectories differ between identical runs")
	}
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSimulator().Run(ctx, Config{Dt: 0.001, Duration: 10, X0: 0.1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

type countingMetric struct {
	count int
}

func (c *countingMetric) Name() string               { return "count" }
func (c *countingMetric) Observe(t, x, v, a float64) { c.count++ }
func (c *countingMetric) Value() float64             { return float64(c.count) }
func (c *countingMetric) Reset()                     { c.count = 0 }

func TestMetricsObserveEverySample(t *testing.T) {
	s := newTestSimulator()
	m := &countingMetric{}
	s.AddMetric(m)

	result, err := s.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0, X0: 0.1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if m.count != result.Exact.Len() {
		t.Errorf("observed %d samples, want %d", m.count, result.Exact.Len())
	}
	if result.Metrics["count"] != float64(m.count) {
		t.Error("metric value not recorded in result")
	}
}

func TestDivergenceMetric(t *testing.T) {
	s := newTestSimulator() // different stiffness per model, so they part ways
	result, err := s.Run(context.Background(), Config{Dt: 0.01, Duration: 5.0, X0: 0.2})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	div, ok := result.Metrics["divergence_max"]
	if !ok {
		t.Fatal("divergence_max missing from metrics")
	}
	if !(div > 0) || math.IsNaN(div) {
		t.Errorf("divergence_max = %g, want positive", div)
	}
}

func TestTimeGrid(t *testing.T) {
	g := TimeGrid{Dt: 0.1, Duration: 1.0}
	if got := g.Steps(); got != 10 {
		t.Fatalf("Steps() = %d, want 10", got)
	}

	ts := g.Times()
	if len(ts) != 10 {
		t.Fatalf("len(Times()) = %d, want 10", len(ts))
	}
	for i, ti := range ts {
		if want := float64(i) * 0.1; ti != want {
			t.Errorf("t[%d] = %g, want %g", i, ti, want)
		}
	}
}
