package scene

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/lucasb-eyer/go-colorful"
)

// PegConfig lays out a brick-laid lattice of static circles.
type PegConfig struct {
	Count  int
	PerRow int
	Radius float64
	Gap    float64
	// Origin is where the first peg of row 0 lands. Rows grow up and
	// columns grow left from it.
	Origin cp.Vector
	Fill   colorful.Color
}

var DefaultPegConfig = PegConfig{
	Count:  40,
	PerRow: 10,
	Radius: 10,
	Gap:    40,
	Origin: cp.Vector{X: 600, Y: 500},
	Fill:   colorful.Color{R: 1},
}

// PegMaterial deflects balls without absorbing all of their energy.
var PegMaterial = Material{
	Friction:       0,
	Restitution:    0.2,
	AirFriction:    0.01,
	StaticFriction: 0.01,
}

func (c PegConfig) Validate() error {
	switch {
	case c.PerRow <= 1:
		return invalid("pegs.per_row", fmt.Sprintf("must be greater than 1, got %d", c.PerRow))
	case c.Count < 0:
		return invalid("pegs.count", fmt.Sprintf("must not be negative, got %d", c.Count))
	case !(c.Radius > 0):
		return invalid("pegs.radius", fmt.Sprintf("must be positive, got %g", c.Radius))
	case c.Gap < 0:
		return invalid("pegs.gap", fmt.Sprintf("must not be negative, got %g", c.Gap))
	}
	return nil
}

// Rows is floor(Count / PerRow).
func (c PegConfig) Rows() int {
	if c.PerRow <= 0 {
		return 0
	}
	return c.Count / c.PerRow
}

// Spacing is the distance between neighbouring rows and columns.
func (c PegConfig) Spacing() float64 {
	return c.Radius + c.Gap
}

// PegsInRow alternates PerRow and PerRow-1.
func (c PegConfig) PegsInRow(row int) int {
	if row%2 == 0 {
		return c.PerRow
	}
	return c.PerRow - 1
}

// Pegs generates the lattice row by row. Odd rows are shifted by half a
// (gap+radius) unit so pegs sit between the ones above and below.
func Pegs(cfg PegConfig) ([]BodySpec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	spacing := cfg.Spacing()
	rows := cfg.Rows()
	pegs := make([]BodySpec, 0, rows*cfg.PerRow)

	for r := 0; r < rows; r++ {
		startX := 0.0
		if r%2 == 1 {
			startX = (cfg.Gap + cfg.Radius) / 2
		}
		for c := 0; c < cfg.PegsInRow(r); c++ {
			x := startX + float64(c)*spacing
			y := float64(r) * spacing
			pegs = append(pegs, BodySpec{
				Label:    fmt.Sprintf("peg-%d-%d", r, c),
				Position: cp.Vector{X: -x + cfg.Origin.X, Y: -y + cfg.Origin.Y},
				Static:   true,
				Parts:    []PartSpec{CirclePart(cp.Vector{}, cfg.Radius, cfg.Fill)},
				Material: PegMaterial,
			})
		}
	}

	return pegs, nil
}
