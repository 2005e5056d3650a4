// Package field implements the on-axis force laws for a point charge moving
// along the symmetry axis of a uniformly charged ring: the exact closed form
// and its small-displacement Taylor expansion.
package field

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidRadius indicates a non-positive ring radius.
	ErrInvalidRadius = errors.New("field: ring radius must be positive")

	// ErrInvalidMass indicates a non-positive test-charge mass.
	ErrInvalidMass = errors.New("field: test-charge mass must be positive")

	// ErrUnknownParam indicates a SetParam name the model does not have.
	ErrUnknownParam = errors.New("field: unknown parameter")
)

// Constants are the scalar physical parameters of a run. They are read at
// configuration time and never mutated afterwards.
type Constants struct {
	Coulomb    float64 // k, N·m²/C²
	RingCharge float64 // Q, total charge on the ring
	Radius     float64 // a, ring radius
	Charge     float64 // q, test charge
	Mass       float64 // m, test-charge mass
}

// Coupling returns the derived constant c = k*q*Q/m that the force laws
// carry. Opposite-sign charges give c < 0, a restoring force that lets the
// charge oscillate through the ring center.
func (c Constants) Coupling() float64 {
	return c.Coulomb * c.Charge * c.RingCharge / c.Mass
}

func (c Constants) Validate() error {
	if c.Radius <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidRadius, c.Radius)
	}
	if c.Mass <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidMass, c.Mass)
	}
	return nil
}

// ExactRing is the exact on-axis law a(x) = c·x/(x²+a²)^(3/2). The
// denominator is bounded below by a³ > 0, so the law is defined for every
// finite x.
type ExactRing struct {
	C float64
	A float64
}

func NewExactRing(c Constants) *ExactRing {
	return &ExactRing{C: c.Coupling(), A: c.Radius}
}

func (r *ExactRing) Name() string { return "exact" }

func (r *ExactRing) Accel(x float64) float64 {
	d := x*x + r.A*r.A
	return r.C * x / (d * math.Sqrt(d))
}

// Energy is the specific energy v²/2 + U(x) with U(x) = c/sqrt(x²+a²),
// chosen so that a = -dU/dx.
func (r *ExactRing) Energy(x, v float64) float64 {
	return 0.5*v*v + r.C/math.Sqrt(x*x+r.A*r.A)
}

func (r *ExactRing) GetParams() map[string]float64 {
	return map[string]float64{"c": r.C, "a": r.A}
}

func (r *ExactRing) SetParam(name string, value float64) error {
	switch name {
	case "c":
		r.C = value
	case "a":
		if value <= 0 {
			return fmt.Errorf("%w: got %g", ErrInvalidRadius, value)
		}
		r.A = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return nil
}

// LinearRing is the Taylor expansion of the exact law about x = 0, kept to
// the cubic term:
//
//	a(x) = (c/a³)·x·(1 - (3/2)(x/a)²)
//
// Valid for |x| small against the ring radius; past a few radii it bears no
// resemblance to the exact law (the cubic term dominates with the wrong
// asymptotics) and the two trajectories part ways quickly.
type LinearRing struct {
	C float64
	A float64
}

func NewLinearRing(c Constants) *LinearRing {
	return &LinearRing{C: c.Coupling(), A: c.Radius}
}

func (r *LinearRing) Name() string { return "approx" }

func (r *LinearRing) Accel(x float64) float64 {
	u := x / r.A
	return (r.C / (r.A * r.A * r.A)) * x * (1 - 1.5*u*u)
}

// Energy integrates the expanded law: U(x) = -(c/a³)(x²/2 - (3/8)x⁴/a²).
func (r *LinearRing) Energy(x, v float64) float64 {
	a3 := r.A * r.A * r.A
	u := -(r.C / a3) * (0.5*x*x - 0.375*x*x*x*x/(r.A*r.A))
	return 0.5*v*v + u
}

func (r *LinearRing) GetParams() map[string]float64 {
	return map[string]float64{"c": r.C, "a": r.A}
}

func (r *LinearRing) SetParam(name string, value float64) error {
	switch name {
	case "c":
		r.C = value
	case "a":
		if value <= 0 {
			return fmt.Errorf("%w: got %g", ErrInvalidRadius, value)
		}
		r.A = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return nil
}
