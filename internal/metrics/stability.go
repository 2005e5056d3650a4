package metrics

import "math"

// Stability reports the fraction of samples whose displacement stayed inside
// a threshold, expressed in ring radii so "stable" means "never flew off".
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{name: "stability", threshold: threshold}
}

func (s *Stability) Name() string { return s.name }

func (s *Stability) Observe(t, x, v, a float64) {
	s.samples++
	if math.Abs(x) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// PeakExcursion records the largest |x| seen over a run.
type PeakExcursion struct {
	name string
	max  float64
}

func NewPeakExcursion() *PeakExcursion {
	return &PeakExcursion{name: "peak_excursion"}
}

func (p *PeakExcursion) Name() string { return p.name }

func (p *PeakExcursion) Observe(t, x, v, a float64) {
	p.max = math.Max(p.max, math.Abs(x))
}

func (p *PeakExcursion) Value() float64 { return p.max }

func (p *PeakExcursion) Reset() { p.max = 0 }
