package config

// Presets are named run configurations covering both coupling regimes.
var Presets = map[string]*Config{
	// Opposite-sign charges: restoring force, small-amplitude oscillation
	// where exact and approximate laws track each other closely.
	"oscillate": {
		Stepper: "euler-cromer", Dt: 0.001, Duration: 10.0,
		Physical: ConstantsSpec{Coulomb: DefaultCoulomb, RingCharge: 1e-6, Radius: 1.0, Charge: -1e-6, Mass: 1e-3},
		Initial:  InitialSpec{X0: 0.05},
	},
	// Same amplitude, ten periods more: drift between the models adds up.
	"drift": {
		Stepper: "euler-cromer", Dt: 0.001, Duration: 100.0,
		Physical: ConstantsSpec{Coulomb: DefaultCoulomb, RingCharge: 1e-6, Radius: 1.0, Charge: -1e-6, Mass: 1e-3},
		Initial:  InitialSpec{X0: 0.05},
	},
	// Large initial displacement: the cubic term of the expansion takes over
	// and the approximate trajectory departs within a fraction of a period.
	"anharmonic": {
		Stepper: "euler-cromer", Dt: 0.0005, Duration: 10.0,
		Physical: ConstantsSpec{Coulomb: DefaultCoulomb, RingCharge: 1e-6, Radius: 1.0, Charge: -1e-6, Mass: 1e-3},
		Initial:  InitialSpec{X0: 0.8},
	},
	// Like-sign charges: the on-axis force repels and the charge runs off
	// along the axis.
	"repel": {
		Stepper: "euler-cromer", Dt: 0.001, Duration: 5.0,
		Physical: ConstantsSpec{Coulomb: DefaultCoulomb, RingCharge: 1e-6, Radius: 1.0, Charge: 1e-6, Mass: 1e-3},
		Initial:  InitialSpec{X0: 0.01},
	},
	// Forward Euler on the oscillator, for stability comparisons.
	"naive": {
		Stepper: "euler", Dt: 0.001, Duration: 10.0,
		Physical: ConstantsSpec{Coulomb: DefaultCoulomb, RingCharge: 1e-6, Radius: 1.0, Charge: -1e-6, Mass: 1e-3},
		Initial:  InitialSpec{X0: 0.05},
	},
}

// GetPreset returns a copy of the named preset, or nil if none exists.
// Callers may overwrite fields on the result without touching the table.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
