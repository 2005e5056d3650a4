// Package integrators provides the fixed-step schemes used to advance a
// force model one sample at a time.
package integrators

import "github.com/ringlab/ringsim/internal/sim"

// EulerCromer is the semi-implicit Euler scheme: acceleration from the
// previous position, velocity from the new acceleration, position from the
// new velocity. The ordering is what keeps oscillatory motion from pumping
// energy the way forward Euler does; it must not be swapped.
type EulerCromer struct{}

func NewEulerCromer() *EulerCromer {
	return &EulerCromer{}
}

func (e *EulerCromer) Name() string { return "euler-cromer" }

func (e *EulerCromer) Step(f sim.ForceModel, x, v, dt float64) (float64, float64, float64) {
	a := f.Accel(x)
	v += a * dt
	x += v * dt
	return x, v, a
}

// Euler is the naive forward scheme, kept as the baseline the semi-implicit
// scheme is measured against: position advances with the old velocity.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(f sim.ForceModel, x, v, dt float64) (float64, float64, float64) {
	a := f.Accel(x)
	xNew := x + v*dt
	vNew := v + a*dt
	return xNew, vNew, a
}
