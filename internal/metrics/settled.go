package metrics

import (
	"github.com/san-kum/plinko/internal/sim"
	"github.com/san-kum/plinko/internal/world"
)

// Settled is the fraction of dynamic bodies moving slower than the
// threshold at the last observed step.
type Settled struct {
	name      string
	threshold float64
	slow      int
	dynamic   int
}

func NewSettled(threshold float64) *Settled {
	return &Settled{
		name:      "settled",
		threshold: threshold,
	}
}

func (s *Settled) Name() string {
	return s.name
}

func (s *Settled) Observe(f sim.Frame, w *world.World) {
	s.slow, s.dynamic = 0, 0
	for _, b := range w.Bodies() {
		if b.Static {
			continue
		}
		s.dynamic++
		if b.Velocity().Length() < s.threshold {
			s.slow++
		}
	}
}

func (s *Settled) Value() float64 {
	if s.dynamic == 0 {
		return 1.0
	}
	return float64(s.slow) / float64(s.dynamic)
}

func (s *Settled) Reset() {
	s.slow = 0
	s.dynamic = 0
}
