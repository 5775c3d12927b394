package metrics

import "github.com/san-kum/plinko/internal/sim"

// DefaultSettleSpeed is the speed in units/s below which a body counts as
// settled.
const DefaultSettleSpeed = 5.0

// Standard returns a fresh set of the metrics recorded for every run.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewContacts(),
		NewSettled(DefaultSettleSpeed),
	}
}
