package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ringlab/ringsim/internal/field"
	"github.com/ringlab/ringsim/internal/sim"
)

const (
	DefaultCoulomb  = 8.99e9
	DefaultRingQ    = 1e-6
	DefaultRadius   = 1.0
	DefaultCharge   = -1e-6
	DefaultMass     = 1e-3
	DefaultDt       = 0.001
	DefaultDuration = 10.0
	DefaultX0       = 0.1
)

// Config is the full run description: physical parameters, grid, initial
// conditions and the stepping scheme.
type Config struct {
	Stepper  string        `yaml:"stepper"`
	Dt       float64       `yaml:"dt"`
	Duration float64       `yaml:"duration"`
	Physical ConstantsSpec `yaml:"physical"`
	Initial  InitialSpec   `yaml:"initial"`
}

type ConstantsSpec struct {
	Coulomb    float64 `yaml:"k"`
	RingCharge float64 `yaml:"ring_charge"`
	Radius     float64 `yaml:"radius"`
	Charge     float64 `yaml:"charge"`
	Mass       float64 `yaml:"mass"`
}

type InitialSpec struct {
	X0 float64 `yaml:"x0"`
	V0 float64 `yaml:"v0"`
}

// DefaultConfig is an attractive (oscillating) setup: a negative test charge
// displaced a tenth of a radius off the ring center.
func DefaultConfig() *Config {
	return &Config{
		Stepper:  "euler-cromer",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Physical: ConstantsSpec{
			Coulomb:    DefaultCoulomb,
			RingCharge: DefaultRingQ,
			Radius:     DefaultRadius,
			Charge:     DefaultCharge,
			Mass:       DefaultMass,
		},
		Initial: InitialSpec{X0: DefaultX0},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Constants converts the physical block into the immutable run constants.
func (c *Config) Constants() field.Constants {
	return field.Constants{
		Coulomb:    c.Physical.Coulomb,
		RingCharge: c.Physical.RingCharge,
		Radius:     c.Physical.Radius,
		Charge:     c.Physical.Charge,
		Mass:       c.Physical.Mass,
	}
}

// SimConfig converts the grid and initial-condition blocks.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:       c.Dt,
		Duration: c.Duration,
		X0:       c.Initial.X0,
		V0:       c.Initial.V0,
	}
}
