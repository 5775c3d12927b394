package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/plinko/internal/sim"
)

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		name string
		freq float64
	}{
		{"slow", 1},
		{"bounce", 2},
		{"fast", 7.5},
	}

	dt := 1.0 / 60.0
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]float64, 600)
			for i := range data {
				data[i] = 50 + 10*math.Sin(2*math.Pi*tt.freq*float64(i)*dt)
			}
			if got := DominantFrequency(data, dt); math.Abs(got-tt.freq) > 0.1 {
				t.Errorf("DominantFrequency = %v, want %v", got, tt.freq)
			}
		})
	}
}

func TestDominantFrequencyFlat(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = 3
	}
	if got := DominantFrequency(data, 0.1); got != 0 {
		t.Errorf("flat series frequency = %v, want 0", got)
	}
	if got := DominantFrequency([]float64{1}, 0.1); got != 0 {
		t.Errorf("single sample frequency = %v, want 0", got)
	}
}

func frames(energy ...float64) []sim.Frame {
	out := make([]sim.Frame, len(energy))
	for i, e := range energy {
		out[i] = sim.Frame{Step: i + 1, Time: float64(i+1) * 0.5, KineticEnergy: e}
	}
	return out
}

func TestSettleTime(t *testing.T) {
	tests := []struct {
		name    string
		frames  []sim.Frame
		want    float64
		settled bool
	}{
		{"settles", frames(100, 50, 20, 1, 0.5), 2.0, true},
		{"bounces back", frames(100, 1, 80, 1, 0.5), 2.0, true},
		{"never", frames(100, 50, 20), 0, false},
		{"at rest", frames(0, 0), 0.5, true},
		{"empty", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SettleTime(tt.frames, 5)
			if ok != tt.settled || got != tt.want {
				t.Errorf("SettleTime = %v, %v; want %v, %v", got, ok, tt.want, tt.settled)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	fs := frames(10, 40, 20, 2)
	fs[1].Started = 3
	fs[2].Started = 1

	s := Summarize(fs, 0.5, 5)
	if s.Samples != 4 || s.Contacts != 4 {
		t.Errorf("samples/contacts = %d/%d", s.Samples, s.Contacts)
	}
	if s.PeakEnergy != 40 || s.PeakTime != 1.0 {
		t.Errorf("peak = %v at %v", s.PeakEnergy, s.PeakTime)
	}
	if s.MeanEnergy != 18 {
		t.Errorf("mean = %v, want 18", s.MeanEnergy)
	}
	if s.ContactRate != 2 {
		t.Errorf("contact rate = %v, want 2", s.ContactRate)
	}
	if !s.Settled || s.SettleTime != 2.0 {
		t.Errorf("settle = %v at %v", s.Settled, s.SettleTime)
	}
}
