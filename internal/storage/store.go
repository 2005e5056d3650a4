// Package storage persists completed runs: a directory per run holding
// metadata JSON and the trajectory CSV, plus a SQLite catalog for listing.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ringlab/ringsim/internal/field"
	"github.com/ringlab/ringsim/internal/sim"
)

type Store struct {
	baseDir string
	catalog *Catalog
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}
	cat, err := OpenCatalog(filepath.Join(s.baseDir, "catalog.db"))
	if err != nil {
		return err
	}
	s.catalog = cat
	return nil
}

func (s *Store) Close() error {
	if s.catalog == nil {
		return nil
	}
	return s.catalog.Close()
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Stepper   string             `json:"stepper"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	X0        float64            `json:"x0"`
	V0        float64            `json:"v0"`
	Coupling  float64            `json:"coupling"`
	Radius    float64            `json:"radius"`
	Metrics   map[string]float64 `json:"metrics"`
}

var trajectoryHeader = []string{
	"time",
	"x_exact", "v_exact", "a_exact",
	"x_approx", "v_approx", "a_approx",
}

// Save writes one completed run and registers it in the catalog. The run ID
// is a UUID so concurrent or same-second saves never collide.
func (s *Store) Save(stepper string, cfg sim.Config, consts field.Constants, result *sim.Result) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Stepper:   stepper,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		X0:        cfg.X0,
		V0:        cfg.V0,
		Coupling:  consts.Coupling(),
		Radius:    consts.Radius,
		Metrics:   result.Metrics,
	}

	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}
	if err := s.writeTrajectories(runDir, result); err != nil {
		return "", err
	}
	if s.catalog != nil {
		if err := s.catalog.Insert(meta); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) writeMetadata(runDir string, meta RunMetadata) error {
	f, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func (s *Store) writeTrajectories(runDir string, result *sim.Result) error {
	f, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(trajectoryHeader); err != nil {
		return err
	}

	for i := 0; i < result.Exact.Len(); i++ {
		row := []string{
			fmtFloat(result.Exact.Times[i]),
			fmtFloat(result.Exact.Pos[i]),
			fmtFloat(result.Exact.Vel[i]),
			fmtFloat(result.Exact.Acc[i]),
			fmtFloat(result.Approx.Pos[i]),
			fmtFloat(result.Approx.Vel[i]),
			fmtFloat(result.Approx.Acc[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectories reads the saved series back into trajectory pairs.
func (s *Store) LoadTrajectories(runID string) (exact, approx *sim.Trajectory, err error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("storage: run %s has no samples", runID)
	}

	n := len(rows) - 1
	exact = sim.NewTrajectory(n)
	approx = sim.NewTrajectory(n)

	for i, row := range rows[1:] {
		if len(row) != len(trajectoryHeader) {
			return nil, nil, fmt.Errorf("storage: run %s row %d has %d columns", runID, i+1, len(row))
		}
		vals := make([]float64, len(row))
		for j, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("storage: run %s row %d: %w", runID, i+1, err)
			}
			vals[j] = v
		}
		exact.Times[i] = vals[0]
		exact.Pos[i] = vals[1]
		exact.Vel[i] = vals[2]
		exact.Acc[i] = vals[3]
		approx.Times[i] = vals[0]
		approx.Pos[i] = vals[4]
		approx.Vel[i] = vals[5]
		approx.Acc[i] = vals[6]
	}

	return exact, approx, nil
}

// List returns catalog entries, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("storage: store not initialized")
	}
	return s.catalog.List()
}
