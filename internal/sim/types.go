package sim

import (
	"errors"

	"github.com/san-kum/plinko/internal/world"
)

var ErrInvalidConfig = errors.New("sim: invalid config")

// Frame summarizes one world step.
type Frame struct {
	Step          int     `json:"step"`
	Time          float64 `json:"time"`
	KineticEnergy float64 `json:"kinetic_energy"`
	// Started and Ended count the contact pairs reported during the step.
	Started int `json:"started"`
	Ended   int `json:"ended"`
}

type Metric interface {
	Name() string
	Observe(f Frame, w *world.World)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(f Frame, w *world.World)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(f Frame, w *world.World)

func (fn ObserverFunc) OnStep(f Frame, w *world.World) { fn(f, w) }

type Config struct {
	Dt       float64
	Duration float64
	// FPS is the wall-clock tick rate of Run. Zero means one tick per Dt.
	FPS float64
}

func DefaultConfig() Config {
	return Config{
		Dt:       1.0 / 60.0,
		Duration: 10,
		FPS:      60,
	}
}

type Result struct {
	Frames  []Frame
	Metrics map[string]float64
	Steps   int
}

// Energies returns the kinetic energy series of r.
func (r *Result) Energies() []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.KineticEnergy
	}
	return out
}
