package scene

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/lucasb-eyer/go-colorful"
)

// BallConfig is the single bouncy ball dropped into the peg field.
type BallConfig struct {
	Radius      float64
	Restitution float64
	// MaxNudge bounds the random horizontal launch speed.
	MaxNudge float64
	Fill     colorful.Color
}

var DefaultBallConfig = BallConfig{
	Radius:      10,
	Restitution: 1,
	MaxNudge:    64,
	Fill:        colorful.Color{B: 1},
}

// Ball drops from (w/2, h/4) with a random push to the right.
func Ball(rng *rand.Rand, canvas Canvas, cfg BallConfig) (BodySpec, error) {
	if !(cfg.Radius > 0) {
		return BodySpec{}, invalid("ball.radius", "must be positive")
	}
	if cfg.MaxNudge < 0 {
		return BodySpec{}, invalid("ball.max_nudge", "must not be negative")
	}

	mat := DefaultMaterial
	mat.Friction = 0
	mat.Restitution = cfg.Restitution
	mat.AirFriction = 0.01
	mat.StaticFriction = 0.01

	return BodySpec{
		Label:    "ball",
		Position: cp.Vector{X: canvas.Width / 2, Y: canvas.Height / 4},
		Velocity: cp.Vector{X: rng.Float64() * cfg.MaxNudge},
		Parts:    []PartSpec{CirclePart(cp.Vector{}, cfg.Radius, cfg.Fill)},
		Material: mat,
	}, nil
}
