package world

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/plinko/internal/palette"
	"github.com/san-kum/plinko/internal/scene"
)

// ErrorBias converts a per-step correction fraction into the engine's
// "error remaining after one second" at the reference step rate.
func ErrorBias(stiffness float64) float64 {
	return math.Pow(1-stiffness, referenceRate)
}

// Constraint ties AnchorB on body B to AnchorA, which is a world point when
// A is nil.
type Constraint struct {
	ID        int
	Label     string
	A, B      *Body
	AnchorA   cp.Vector
	AnchorB   cp.Vector
	Stiffness float64
	Length    float64
	Render    scene.Render

	joint *cp.Constraint
}

// WorldAnchors returns both anchor points in world space.
func (c *Constraint) WorldAnchors() (cp.Vector, cp.Vector) {
	a := c.AnchorA
	if c.A != nil {
		a = c.A.cp.LocalToWorld(c.AnchorA)
	}
	return a, c.B.cp.LocalToWorld(c.AnchorB)
}

// Pin keeps the local point anchor on b at its current distance from the
// fixed world point at.
func (w *World) Pin(label string, b *Body, at, anchor cp.Vector, stiffness float64) (*Constraint, error) {
	if w.indexOf(b) < 0 {
		return nil, ErrForeignBody
	}
	if stiffness < 0 || stiffness > 1 {
		return nil, fmt.Errorf("%w: got %g", ErrStiffness, stiffness)
	}

	joint := cp.NewPinJoint(w.space.StaticBody, b.cp, at, anchor)
	joint.SetErrorBias(ErrorBias(stiffness))
	w.space.AddConstraint(joint)

	c := &Constraint{
		ID:        w.nextID,
		Label:     label,
		B:         b,
		AnchorA:   at,
		AnchorB:   anchor,
		Stiffness: stiffness,
		Length:    at.Distance(b.cp.LocalToWorld(anchor)),
		Render:    scene.Render{Stroke: palette.Gray, StrokeWidth: 1, Visible: true},
		joint:     joint,
	}
	w.nextID++
	w.constraints = append(w.constraints, c)
	return c, nil
}

// RemoveConstraint detaches c from the world.
func (w *World) RemoveConstraint(c *Constraint) {
	for i, o := range w.constraints {
		if o == c {
			w.space.RemoveConstraint(c.joint)
			w.constraints = append(w.constraints[:i], w.constraints[i+1:]...)
			return
		}
	}
}
