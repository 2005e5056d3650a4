package sim

import "errors"

// Configuration errors reported before any integration happens. The
// recurrence itself has no failure modes: x²+a² never reaches zero.
var (
	// ErrInvalidTimestep indicates dt <= 0.
	ErrInvalidTimestep = errors.New("sim: timestep must be positive")

	// ErrInvalidDuration indicates a non-positive total duration.
	ErrInvalidDuration = errors.New("sim: duration must be positive")

	// ErrTooFewSamples indicates a grid with fewer than two samples, which
	// leaves nothing to integrate.
	ErrTooFewSamples = errors.New("sim: grid must contain at least two samples")

	// ErrMissingModel indicates a simulator constructed without both models.
	ErrMissingModel = errors.New("sim: exact and approximate models are required")
)
