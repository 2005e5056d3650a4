package storage

import (
	"context"
	"testing"
	"time"

	"github.com/ringlab/ringsim/internal/field"
	"github.com/ringlab/ringsim/internal/integrators"
	"github.com/ringlab/ringsim/internal/sim"
)

func testRun(t *testing.T) (sim.Config, field.Constants, *sim.Result) {
	t.Helper()

	consts := field.Constants{Coulomb: 8.99e9, RingCharge: 1e-6, Radius: 1, Charge: -1e-6, Mass: 1e-3}
	cfg := sim.Config{Dt: 0.01, Duration: 1.0, X0: 0.05}

	s := sim.New(integrators.NewEulerCromer(),
		field.NewExactRing(consts), field.NewLinearRing(consts))
	result, err := s.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return cfg, consts, result
}

func TestSaveLoadRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer st.Close()

	cfg, consts, result := testRun(t)

	runID, err := st.Save("euler-cromer", cfg, consts, result)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if runID == "" {
		t.Fatal("empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load metadata: %v", err)
	}
	if meta.ID != runID || meta.Stepper != "euler-cromer" {
		t.Errorf("metadata = %+v", meta)
	}
	if meta.Coupling != consts.Coupling() {
		t.Errorf("coupling = %g, want %g", meta.Coupling, consts.Coupling())
	}
	if _, ok := meta.Metrics["divergence_max"]; !ok {
		t.Error("metrics not persisted")
	}

	exact, approx, err := st.LoadTrajectories(runID)
	if err != nil {
		t.Fatalf("load trajectories: %v", err)
	}
	if exact.Len() != result.Exact.Len() || approx.Len() != result.Approx.Len() {
		t.Fatalf("lengths: got (%d, %d), want (%d, %d)",
			exact.Len(), approx.Len(), result.Exact.Len(), result.Approx.Len())
	}

	// Full-precision formatting means the roundtrip is exact.
	for i := 0; i < exact.Len(); i++ {
		if exact.Pos[i] != result.Exact.Pos[i] {
			t.Fatalf("exact pos[%d]: got %.17g, want %.17g", i, exact.Pos[i], result.Exact.Pos[i])
		}
		if approx.Pos[i] != result.Approx.Pos[i] {
			t.Fatalf("approx pos[%d]: got %.17g, want %.17g", i, approx.Pos[i], result.Approx.Pos[i])
		}
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer st.Close()

	cfg, consts, result := testRun(t)

	first, err := st.Save("euler-cromer", cfg, consts, result)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	time.Sleep(10 * time.Millisecond) // distinct created_at timestamps
	second, err := st.Save("euler", cfg, consts, result)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("listed %d runs, want 2", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("order: got [%s, %s], want [%s, %s]", runs[0].ID, runs[1].ID, second, first)
	}
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer st.Close()

	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error for unknown run")
	}
	if _, _, err := st.LoadTrajectories("nope"); err == nil {
		t.Error("expected error for unknown trajectories")
	}
}
