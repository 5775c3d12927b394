package world

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/plinko/internal/scene"
)

// All scene shapes share one collision type so a single handler sees every pair.
const sceneCollisionType cp.CollisionType = 1

// referenceRate is the step rate air friction coefficients are tuned for.
const referenceRate = 60.0

type Options struct {
	// Gravity in units/s^2; positive Y pulls toward the bottom of the canvas.
	Gravity    cp.Vector
	Iterations int
}

func DefaultOptions() Options {
	return Options{
		Gravity:    cp.Vector{X: 0, Y: 1000},
		Iterations: 10,
	}
}

// World owns the engine space and every body, part and constraint in it.
type World struct {
	space       *cp.Space
	bodies      []*Body
	parts       map[*cp.Shape]*Part
	constraints []*Constraint
	pointer     *Pointer
	handlers    map[EventType][]Handler
	started     []Pair
	ended       []Pair
	nextID      int
	steps       int
	time        float64
}

func New(opts Options) *World {
	space := cp.NewSpace()
	space.SetGravity(opts.Gravity)
	if opts.Iterations > 0 {
		space.Iterations = uint(opts.Iterations)
	}

	w := &World{
		space:    space,
		bodies:   make([]*Body, 0),
		parts:    make(map[*cp.Shape]*Part),
		handlers: make(map[EventType][]Handler),
	}
	w.installCollisionHandler()
	return w
}

// Space exposes the engine space for queries the world does not wrap.
func (w *World) Space() *cp.Space { return w.space }

func (w *World) Steps() int        { return w.steps }
func (w *World) Time() float64     { return w.time }
func (w *World) Pointer() *Pointer { return w.pointer }

// Bodies returns the bodies in insertion (draw) order.
func (w *World) Bodies() []*Body {
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

func (w *World) Body(id int) (*Body, bool) {
	for _, b := range w.bodies {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

func (w *World) Constraints() []*Constraint {
	out := make([]*Constraint, len(w.constraints))
	copy(out, w.constraints)
	return out
}

// Add validates spec and creates the engine body with one shape per part.
// Dynamic bodies get their mass, moment and center of gravity from the part
// densities.
func (w *World) Add(spec scene.BodySpec) (*Body, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidGeometry, spec.Label, err)
	}

	var eb *cp.Body
	if spec.Static {
		eb = cp.NewStaticBody()
	} else {
		eb = cp.NewBody(0, 0)
	}
	eb.SetPosition(spec.Position)
	w.space.AddBody(eb)

	b := &Body{
		ID:       w.nextID,
		Label:    spec.Label,
		Static:   spec.Static,
		Material: spec.Material,
		Parts:    make([]*Part, 0, len(spec.Parts)),
		cp:       eb,
		world:    w,
	}
	w.nextID++

	for i, ps := range spec.Parts {
		shape := w.space.AddShape(newShape(eb, ps))
		shape.SetElasticity(spec.Material.Restitution)
		shape.SetFriction(spec.Material.Friction)
		shape.SetCollisionType(sceneCollisionType)
		if !spec.Static {
			shape.SetDensity(spec.Material.Density)
		}

		part := &Part{Index: i, Spec: ps, Render: ps.Render, body: b, shape: shape}
		b.Parts = append(b.Parts, part)
		w.parts[shape] = part
	}

	if !spec.Static {
		if air := spec.Material.AirFriction; air > 0 {
			eb.SetVelocityUpdateFunc(airDrag(air))
		}
		if spec.Velocity != (cp.Vector{}) {
			eb.SetVelocityVector(spec.Velocity)
		}
	}

	w.bodies = append(w.bodies, b)
	return b, nil
}

// AddAll adds specs in order and stops at the first error.
func (w *World) AddAll(specs []scene.BodySpec) ([]*Body, error) {
	out := make([]*Body, 0, len(specs))
	for _, s := range specs {
		b, err := w.Add(s)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Remove detaches b, its shapes and every constraint that references it.
func (w *World) Remove(b *Body) error {
	idx := w.indexOf(b)
	if idx < 0 {
		return ErrForeignBody
	}

	kept := w.constraints[:0]
	for _, c := range w.constraints {
		if c.A == b || c.B == b {
			w.space.RemoveConstraint(c.joint)
			continue
		}
		kept = append(kept, c)
	}
	w.constraints = kept

	if w.pointer != nil && w.pointer.target == b {
		w.pointer.Release()
	}

	// RemoveShape fires separate callbacks for cached contacts; unmapped
	// shapes are not recorded.
	for _, p := range b.Parts {
		delete(w.parts, p.shape)
		w.space.RemoveShape(p.shape)
	}
	w.space.RemoveBody(b.cp)

	w.bodies = append(w.bodies[:idx], w.bodies[idx+1:]...)
	b.world = nil
	return nil
}

// Step advances the simulation by dt and then dispatches the collision
// batches gathered during the step.
func (w *World) Step(dt float64) {
	if w.pointer != nil {
		w.pointer.update(dt)
	}
	w.space.Step(dt)
	w.steps++
	w.time += dt
	w.flush()
}

// KineticEnergy sums over all dynamic bodies.
func (w *World) KineticEnergy() float64 {
	total := 0.0
	for _, b := range w.bodies {
		total += b.KineticEnergy()
	}
	return total
}

func (w *World) indexOf(b *Body) int {
	if b == nil || b.world != w {
		return -1
	}
	for i, o := range w.bodies {
		if o == b {
			return i
		}
	}
	return -1
}

func newShape(body *cp.Body, ps scene.PartSpec) *cp.Shape {
	if ps.Kind == scene.Box {
		hw, hh := ps.Width/2, ps.Height/2
		bb := cp.BB{L: ps.Offset.X - hw, B: ps.Offset.Y - hh, R: ps.Offset.X + hw, T: ps.Offset.Y + hh}
		return cp.NewBox2(body, bb, 0)
	}
	return cp.NewCircle(body, ps.Radius, ps.Offset)
}

// airDrag scales the engine damping by (1-coeff) per reference step.
func airDrag(coeff float64) func(*cp.Body, cp.Vector, float64, float64) {
	return func(body *cp.Body, gravity cp.Vector, damping, dt float64) {
		body.UpdateVelocity(gravity, damping*math.Pow(1-coeff, dt*referenceRate), dt)
	}
}
