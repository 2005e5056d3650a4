// Package sim provides the core primitives for integrating a point charge on
// the axis of a charged ring:
//
//   - [TimeGrid]: the fixed-step sampling grid t_i = i*dt
//   - [Trajectory]: parallel position/velocity/acceleration series
//   - [ForceModel]: a scalar force law a = f(x)
//   - [Stepper]: a fixed-step integration scheme
//   - [Simulator]: runs the exact and approximate laws over the same grid
//
// # Example
//
//	s := sim.New(integrators.NewEulerCromer(),
//		field.NewExactRing(consts), field.NewLinearRing(consts))
//	result, _ := s.Run(ctx, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe: each owns its trajectories for
// the duration of a run. Use separate instances for concurrent runs.
package sim
