package world

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// PointerOptions configure the drag constraint.
type PointerOptions struct {
	Stiffness float64
	Visible   bool
	// PickRadius is how far from a shape a press still grabs it.
	PickRadius float64
	// Follow is the fraction of the remaining distance the anchor covers
	// toward the pointer each step.
	Follow   float64
	MaxForce float64
}

func DefaultPointerOptions() PointerOptions {
	return PointerOptions{
		Stiffness:  0.2,
		Visible:    false,
		PickRadius: 5,
		Follow:     0.25,
		MaxForce:   cp.INFINITY,
	}
}

// Pointer drags dynamic bodies toward the input pointer. The anchor is a
// kinematic body; a pivot joint links it to the grabbed body only while a
// drag is active, so an idle pointer applies no force.
type Pointer struct {
	opts     PointerOptions
	world    *World
	anchor   *cp.Body
	joint    *cp.Constraint
	target   *Body
	position cp.Vector
}

// NewPointer attaches the single drag constraint of w.
func NewPointer(w *World, opts PointerOptions) (*Pointer, error) {
	if w.pointer != nil {
		return nil, ErrPointerExists
	}
	if opts.Stiffness < 0 || opts.Stiffness > 1 {
		return nil, fmt.Errorf("%w: got %g", ErrStiffness, opts.Stiffness)
	}
	if opts.Follow <= 0 || opts.Follow > 1 {
		opts.Follow = 1
	}
	if opts.MaxForce <= 0 {
		opts.MaxForce = cp.INFINITY
	}

	anchor := cp.NewKinematicBody()
	w.space.AddBody(anchor)

	p := &Pointer{opts: opts, world: w, anchor: anchor}
	w.pointer = p
	return p, nil
}

func (p *Pointer) Options() PointerOptions { return p.opts }
func (p *Pointer) Visible() bool           { return p.opts.Visible }
func (p *Pointer) Dragging() bool          { return p.joint != nil }
func (p *Pointer) Target() *Body           { return p.target }
func (p *Pointer) Position() cp.Vector     { return p.position }

// Anchor is where the joint currently pulls, which lags the pointer.
func (p *Pointer) Anchor() cp.Vector { return p.anchor.Position() }

// Press grabs the nearest dynamic body within PickRadius of at.
func (p *Pointer) Press(at cp.Vector) (*Body, bool) {
	p.Move(at)
	p.anchor.SetPosition(at)
	if p.joint != nil {
		p.Release()
	}

	part, grab, ok := p.pick(at)
	if !ok {
		return nil, false
	}

	body := part.body
	joint := cp.NewPivotJoint2(p.anchor, body.cp, cp.Vector{}, body.cp.WorldToLocal(grab))
	joint.SetMaxForce(p.opts.MaxForce)
	joint.SetErrorBias(ErrorBias(p.opts.Stiffness))
	p.world.space.AddConstraint(joint)

	p.joint = joint
	p.target = body
	return body, true
}

// pick finds the nearest dynamic part within PickRadius. Static parts are
// skipped so a peg or wall next to a body never hides it.
func (p *Pointer) pick(at cp.Vector) (*Part, cp.Vector, bool) {
	var (
		best     *Part
		bestDist = cp.INFINITY
		grab     = at
	)
	p.world.space.PointQuery(at, p.opts.PickRadius, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, point cp.Vector, distance float64, _ cp.Vector, _ interface{}) {
		part, ok := p.world.parts[shape]
		if !ok || part.body.Static || distance >= bestDist {
			return
		}
		best, bestDist = part, distance
		grab = at
		if distance > 0 {
			grab = point
		}
	}, nil)
	return best, grab, best != nil
}

// Move records the pointer position; the anchor follows on the next step.
func (p *Pointer) Move(at cp.Vector) {
	p.position = at
}

// Release drops the grabbed body, if any.
func (p *Pointer) Release() {
	if p.joint == nil {
		return
	}
	p.world.space.RemoveConstraint(p.joint)
	p.joint = nil
	p.target = nil
}

func (p *Pointer) update(dt float64) {
	if dt <= 0 {
		return
	}
	cur := p.anchor.Position()
	next := cur.Lerp(p.position, p.opts.Follow)
	p.anchor.SetVelocityVector(next.Sub(cur).Mult(1 / dt))
	p.anchor.SetPosition(next)
}
