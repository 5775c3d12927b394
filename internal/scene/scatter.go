package scene

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/plinko/internal/palette"
)

// MinScatterRadius keeps degenerate zero-radius circles out of the engine.
const MinScatterRadius = 0.5

// ScatterConfig controls the random free-body population.
type ScatterConfig struct {
	Canvas   Canvas
	MinCount int
	MaxCount int
	Radius   palette.Range
	Palette  palette.Palette
	Material Material
}

// Scatter presets differ in radius range and color formula.
var scatterPresets = map[string]ScatterConfig{
	"small": {
		Canvas:   DefaultCanvas,
		MinCount: 3,
		MaxCount: 13,
		Radius:   palette.Range{Min: 0, Max: 40},
		Palette:  palette.Muted,
		Material: DefaultMaterial,
	},
	"large": {
		Canvas:   DefaultCanvas,
		MinCount: 3,
		MaxCount: 13,
		Radius:   palette.Range{Min: 20, Max: 70},
		Palette:  palette.Vivid,
		Material: DefaultMaterial,
	},
}

// ScatterPreset returns a copy of the named preset.
func ScatterPreset(name string) (ScatterConfig, error) {
	cfg, ok := scatterPresets[name]
	if !ok {
		return ScatterConfig{}, invalid("scatter.preset", fmt.Sprintf("unknown preset %q (available: %v)", name, ScatterPresetNames()))
	}
	return cfg, nil
}

func ScatterPresetNames() []string {
	names := make([]string, 0, len(scatterPresets))
	for name := range scatterPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c ScatterConfig) Validate() error {
	switch {
	case !(c.Canvas.Width > 0) || !(c.Canvas.Height > 0):
		return invalid("scatter.canvas", "width and height must be positive")
	case c.MinCount < 0:
		return invalid("scatter.min_count", fmt.Sprintf("must not be negative, got %d", c.MinCount))
	case c.MaxCount < c.MinCount:
		return invalid("scatter.max_count", fmt.Sprintf("must be at least min_count (%d), got %d", c.MinCount, c.MaxCount))
	case c.Radius.Min < 0:
		return invalid("scatter.radius.min", fmt.Sprintf("must not be negative, got %g", c.Radius.Min))
	case c.Radius.Max < c.Radius.Min || c.Radius.Max < MinScatterRadius:
		return invalid("scatter.radius.max", fmt.Sprintf("must be at least %g and not below min, got %g", MinScatterRadius, c.Radius.Max))
	case c.Material.Density <= 0:
		return invalid("scatter.material.density", "must be positive")
	}
	return nil
}

// Scatter draws the body count, then for each body an independent position
// over the whole canvas, a radius and a color. Overlap with existing
// geometry is allowed; the solver separates bodies on the first steps.
func Scatter(rng *rand.Rand, cfg ScatterConfig) ([]BodySpec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := cfg.MinCount + rng.Intn(cfg.MaxCount-cfg.MinCount+1)
	bodies := make([]BodySpec, 0, n)
	for i := 0; i < n; i++ {
		pos := cp.Vector{
			X: rng.Float64() * cfg.Canvas.Width,
			Y: rng.Float64() * cfg.Canvas.Height,
		}
		r := cfg.Radius.Sample(rng)
		if r < MinScatterRadius {
			r = MinScatterRadius
		}
		bodies = append(bodies, BodySpec{
			Label:    fmt.Sprintf("scatter-%d", i),
			Position: pos,
			Parts:    []PartSpec{CirclePart(cp.Vector{}, r, palette.Random(rng, cfg.Palette))},
			Material: cfg.Material,
		})
	}

	return bodies, nil
}
