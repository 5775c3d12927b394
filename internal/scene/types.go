package scene

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/lucasb-eyer/go-colorful"
)

// Canvas is the render surface size in world units. The y axis points down.
type Canvas struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

var DefaultCanvas = Canvas{Width: 800, Height: 600}

func (c Canvas) Center() cp.Vector { return cp.Vector{X: c.Width / 2, Y: c.Height / 2} }

func (c Canvas) Contains(p cp.Vector) bool {
	return p.X >= 0 && p.X <= c.Width && p.Y >= 0 && p.Y <= c.Height
}

type ShapeKind int

const (
	Circle ShapeKind = iota
	Box
)

func (k ShapeKind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Box:
		return "box"
	default:
		return "unknown"
	}
}

// Render holds display-only attributes. Nothing in it affects the simulation.
type Render struct {
	Fill        colorful.Color
	Stroke      colorful.Color
	StrokeWidth float64
	Visible     bool
}

// Material mirrors the per-body surface coefficients of the scene format.
// StaticFriction is carried for completeness; the engine uses a single
// Coulomb coefficient (Friction).
type Material struct {
	Density        float64
	Friction       float64
	Restitution    float64
	AirFriction    float64
	StaticFriction float64
}

var DefaultMaterial = Material{
	Density:        0.001,
	Friction:       0.1,
	Restitution:    0,
	AirFriction:    0.01,
	StaticFriction: 0.5,
}

// PartSpec is one primitive shape. Offset is relative to the owning body's
// position; for compound inputs it is expressed in the shared frame.
type PartSpec struct {
	Kind   ShapeKind
	Offset cp.Vector
	Radius float64
	Width  float64
	Height float64
	Render Render
}

func CirclePart(center cp.Vector, radius float64, fill colorful.Color) PartSpec {
	return PartSpec{Kind: Circle, Offset: center, Radius: radius, Render: Render{Fill: fill, Visible: true}}
}

func BoxPart(center cp.Vector, width, height float64, fill colorful.Color) PartSpec {
	return PartSpec{Kind: Box, Offset: center, Width: width, Height: height, Render: Render{Fill: fill, Visible: true}}
}

func (p PartSpec) Area() float64 {
	switch p.Kind {
	case Circle:
		return math.Pi * p.Radius * p.Radius
	case Box:
		return p.Width * p.Height
	}
	return 0
}

// Bounds returns the axis-aligned box of the part placed at origin.
func (p PartSpec) Bounds(origin cp.Vector) cp.BB {
	c := origin.Add(p.Offset)
	hw, hh := p.Radius, p.Radius
	if p.Kind == Box {
		hw, hh = p.Width/2, p.Height/2
	}
	return cp.BB{L: c.X - hw, B: c.Y - hh, R: c.X + hw, T: c.Y + hh}
}

func (p PartSpec) validate(field string) error {
	switch p.Kind {
	case Circle:
		if !(p.Radius > 0) {
			return invalid(field+".radius", "must be positive")
		}
	case Box:
		if !(p.Width > 0) || !(p.Height > 0) {
			return invalid(field+".size", "width and height must be positive")
		}
	default:
		return invalid(field+".kind", "unknown shape kind")
	}
	return nil
}

// BodySpec describes a body before it is added to a world.
type BodySpec struct {
	Label    string
	Position cp.Vector
	Velocity cp.Vector
	Static   bool
	Parts    []PartSpec
	Material Material
}

func (b BodySpec) IsCompound() bool { return len(b.Parts) > 1 }

// PartBounds returns the world-space bounds of every part at the spec's
// position, in part order.
func (b BodySpec) PartBounds() []cp.BB {
	out := make([]cp.BB, len(b.Parts))
	for i, p := range b.Parts {
		out[i] = p.Bounds(b.Position)
	}
	return out
}

// Validate reports geometry the engine cannot accept.
func (b BodySpec) Validate() error {
	if len(b.Parts) == 0 {
		return invalid("parts", "body has no parts")
	}
	for i, p := range b.Parts {
		if err := p.validate(partField(i)); err != nil {
			return err
		}
	}
	if !b.Static && b.Material.Density <= 0 {
		return invalid("material.density", "dynamic bodies need a positive density")
	}
	return nil
}
