package scene

import (
	"github.com/jakecoffman/cp"
	"github.com/lucasb-eyer/go-colorful"
)

// Compound unions parts given in one shared frame into a single body. The
// body is placed at the area-weighted centroid and every part offset is
// rewritten relative to it.
func Compound(label string, parts []PartSpec, mat Material, static bool) (BodySpec, error) {
	if len(parts) == 0 {
		return BodySpec{}, invalid("parts", "compound needs at least one part")
	}

	var total float64
	var centroid cp.Vector
	for i, p := range parts {
		if err := p.validate(partField(i)); err != nil {
			return BodySpec{}, err
		}
		a := p.Area()
		total += a
		centroid = centroid.Add(p.Offset.Mult(a))
	}
	centroid = centroid.Mult(1 / total)

	local := make([]PartSpec, len(parts))
	for i, p := range parts {
		p.Offset = p.Offset.Sub(centroid)
		local[i] = p
	}

	return BodySpec{
		Label:    label,
		Position: centroid,
		Static:   static,
		Parts:    local,
		Material: mat,
	}, nil
}

// Cross is a plus sign: a size x size/5 bar and a size/5 x size bar through
// the same center, sharing one fill.
func Cross(label string, center cp.Vector, size float64, fill colorful.Color) (BodySpec, error) {
	if !(size > 0) {
		return BodySpec{}, invalid("cross.size", "must be positive")
	}
	return Compound(label, []PartSpec{
		BoxPart(center, size, size/5, fill),
		BoxPart(center, size/5, size, fill),
	}, DefaultMaterial, false)
}

// ClusterConfig places circles on the corners of a square whose top-left
// corner is Origin.
type ClusterConfig struct {
	Origin  cp.Vector
	Spacing float64
	Radius  float64
	// Six adds a circle at the middle of the top and bottom edges.
	Six bool
	// Core stacks concentric smaller circles at the square's center.
	Core  bool
	Fills []colorful.Color
}

var DefaultClusterConfig = ClusterConfig{
	Origin:  cp.Vector{X: 400, Y: 300},
	Spacing: 150,
	Radius:  30,
}

// Cluster builds the circle cluster compound. Fills are assigned in part
// order and cycle when there are fewer fills than parts.
func Cluster(label string, cfg ClusterConfig) (BodySpec, error) {
	if !(cfg.Spacing > 0) {
		return BodySpec{}, invalid("cluster.spacing", "must be positive")
	}
	if !(cfg.Radius > 0) {
		return BodySpec{}, invalid("cluster.radius", "must be positive")
	}

	x, y, s := cfg.Origin.X, cfg.Origin.Y, cfg.Spacing
	centers := []cp.Vector{{X: x, Y: y}, {X: x + s, Y: y}, {X: x + s, Y: y + s}, {X: x, Y: y + s}}
	if cfg.Six {
		centers = append(centers, cp.Vector{X: x + s/2, Y: y}, cp.Vector{X: x + s/2, Y: y + s})
	}

	parts := make([]PartSpec, 0, len(centers)+2)
	for _, c := range centers {
		parts = append(parts, CirclePart(c, cfg.Radius, colorful.Color{}))
	}
	if cfg.Core {
		mid := cp.Vector{X: x + s/2, Y: y + s/2}
		parts = append(parts,
			CirclePart(mid, cfg.Radius*0.8, colorful.Color{}),
			CirclePart(mid, cfg.Radius*0.5, colorful.Color{}),
		)
	}
	if len(cfg.Fills) > 0 {
		for i := range parts {
			parts[i].Render.Fill = cfg.Fills[i%len(cfg.Fills)]
		}
	}

	return Compound(label, parts, DefaultMaterial, false)
}
