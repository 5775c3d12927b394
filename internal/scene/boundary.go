package scene

import (
	"github.com/jakecoffman/cp"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultWallThickness is 50 units plus the 0.5 overlap that closes seams.
const DefaultWallThickness = 50.5

var BoundaryMaterial = Material{
	Friction:       0.1,
	Restitution:    0,
	StaticFriction: 0.5,
}

// Boundary builds the floor and both side walls as one static compound.
// Each slab is centered on its canvas edge so it overlaps the neighbouring
// slab at the bottom corners.
func Boundary(canvas Canvas, thickness float64, fill colorful.Color) (BodySpec, error) {
	if !(canvas.Width > 0) || !(canvas.Height > 0) {
		return BodySpec{}, invalid("canvas", "width and height must be positive")
	}
	if !(thickness > 0) {
		return BodySpec{}, invalid("boundary.thickness", "must be positive")
	}

	w, h := canvas.Width, canvas.Height
	return Compound("floor-and-walls", []PartSpec{
		BoxPart(cp.Vector{X: w / 2, Y: h}, w, thickness, fill),
		BoxPart(cp.Vector{X: 0, Y: h / 2}, thickness, h, fill),
		BoxPart(cp.Vector{X: w, Y: h / 2}, thickness, h, fill),
	}, BoundaryMaterial, true)
}
