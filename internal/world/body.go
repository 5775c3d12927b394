package world

import (
	"github.com/jakecoffman/cp"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/plinko/internal/scene"
)

// Part is one primitive shape of a body. Its Render state is the only thing
// collision callbacks are allowed to touch.
type Part struct {
	Index  int
	Spec   scene.PartSpec
	Render scene.Render

	body  *Body
	shape *cp.Shape
}

func (p *Part) Body() *Body { return p.body }

// WorldCenter is the part's center after the body transform.
func (p *Part) WorldCenter() cp.Vector {
	return p.body.cp.LocalToWorld(p.Spec.Offset)
}

// Corners returns the four box corners in world space, clockwise from the
// top-left in local coordinates. Circles return nil.
func (p *Part) Corners() []cp.Vector {
	if p.Spec.Kind != scene.Box {
		return nil
	}
	hw, hh := p.Spec.Width/2, p.Spec.Height/2
	o := p.Spec.Offset
	local := []cp.Vector{
		{X: o.X - hw, Y: o.Y - hh},
		{X: o.X + hw, Y: o.Y - hh},
		{X: o.X + hw, Y: o.Y + hh},
		{X: o.X - hw, Y: o.Y + hh},
	}
	for i, v := range local {
		local[i] = p.body.cp.LocalToWorld(v)
	}
	return local
}

// Body is a simulated entity. A compound body has several parts but a
// single identity.
type Body struct {
	ID       int
	Label    string
	Static   bool
	Material scene.Material
	Parts    []*Part

	cp    *cp.Body
	world *World
}

func (b *Body) IsCompound() bool { return len(b.Parts) > 1 }

func (b *Body) Position() cp.Vector { return b.cp.Position() }
func (b *Body) Angle() float64      { return b.cp.Angle() }
func (b *Body) Velocity() cp.Vector { return b.cp.Velocity() }
func (b *Body) Mass() float64       { return b.cp.Mass() }

// Engine exposes the underlying engine body.
func (b *Body) Engine() *cp.Body { return b.cp }

// Fill returns the first part's fill.
func (b *Body) Fill() colorful.Color {
	return b.Parts[0].Render.Fill
}

// SetFill paints every part.
func (b *Body) SetFill(c colorful.Color) {
	for _, p := range b.Parts {
		p.Render.Fill = c
	}
}

// KineticEnergy is the translational plus rotational energy of a dynamic body.
func (b *Body) KineticEnergy() float64 {
	if b.Static {
		return 0
	}
	v := b.cp.Velocity()
	w := b.cp.AngularVelocity()
	return 0.5*b.cp.Mass()*v.LengthSq() + 0.5*b.cp.Moment()*w*w
}
