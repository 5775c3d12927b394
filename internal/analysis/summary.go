package analysis

import "github.com/san-kum/plinko/internal/sim"

// SettleTime returns the time of the first frame after which the kinetic
// energy stays below threshold until the end of the run.
func SettleTime(frames []sim.Frame, threshold float64) (float64, bool) {
	if len(frames) == 0 {
		return 0, false
	}
	last := -1
	for i := len(frames) - 1; i >= 0; i-- {
		if frames[i].KineticEnergy >= threshold {
			last = i
			break
		}
	}
	if last == len(frames)-1 {
		return 0, false
	}
	return frames[last+1].Time, true
}

type Summary struct {
	Samples    int
	Duration   float64
	MeanEnergy float64
	PeakEnergy float64
	PeakTime   float64
	Contacts   int
	// ContactRate is started contact pairs per simulated second.
	ContactRate       float64
	DominantFrequency float64
	Settled           bool
	SettleTime        float64
}

// Summarize analyzes a stored frame series sampled every dt seconds.
func Summarize(frames []sim.Frame, dt, settleEnergy float64) Summary {
	s := Summary{Samples: len(frames)}
	if len(frames) == 0 {
		return s
	}

	energy := make([]float64, len(frames))
	total := 0.0
	for i, f := range frames {
		energy[i] = f.KineticEnergy
		total += f.KineticEnergy
		s.Contacts += f.Started
		if i == 0 || f.KineticEnergy > s.PeakEnergy {
			s.PeakEnergy = f.KineticEnergy
			s.PeakTime = f.Time
		}
	}

	s.Duration = frames[len(frames)-1].Time
	s.MeanEnergy = total / float64(len(frames))
	if s.Duration > 0 {
		s.ContactRate = float64(s.Contacts) / s.Duration
	}
	s.DominantFrequency = DominantFrequency(energy, dt)
	s.SettleTime, s.Settled = SettleTime(frames, settleEnergy)
	return s
}
