// Package palette draws random HSL fill colors for scene bodies.
package palette

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Range is a closed interval sampled uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) Sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Palette bounds hue in degrees and saturation/lightness in [0,1].
type Palette struct {
	Name       string
	Hue        Range
	Saturation Range
	Lightness  Range
}

var (
	// Muted is hsla(rand*360, rand*50+30%, rand*50+30%).
	Muted = Palette{
		Name:       "muted",
		Hue:        Range{0, 360},
		Saturation: Range{0.3, 0.8},
		Lightness:  Range{0.3, 0.8},
	}

	Vivid = Palette{
		Name:       "vivid",
		Hue:        Range{0, 360},
		Saturation: Range{0.6, 1.0},
		Lightness:  Range{0.45, 0.65},
	}

	Pastel = Palette{
		Name:       "pastel",
		Hue:        Range{0, 360},
		Saturation: Range{0.4, 0.7},
		Lightness:  Range{0.75, 0.9},
	}

	palettes = map[string]Palette{
		Muted.Name:  Muted,
		Vivid.Name:  Vivid,
		Pastel.Name: Pastel,
	}
)

var (
	Red   = colorful.Color{R: 1}
	Blue  = colorful.Color{B: 1}
	White = colorful.Color{R: 1, G: 1, B: 1}
	Gray  = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
)

// Get returns the named palette.
func Get(name string) (Palette, error) {
	p, ok := palettes[name]
	if !ok {
		return Palette{}, fmt.Errorf("palette: unknown palette %q (available: %v)", name, Names())
	}
	return p, nil
}

func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Random draws hue, saturation and lightness independently.
func Random(rng *rand.Rand, p Palette) colorful.Color {
	return colorful.Hsl(p.Hue.Sample(rng), p.Saturation.Sample(rng), p.Lightness.Sample(rng))
}

// Source is a palette bound to a random stream.
type Source struct {
	rng     *rand.Rand
	palette Palette
}

func NewSource(rng *rand.Rand, p Palette) *Source {
	return &Source{rng: rng, palette: p}
}

func (s *Source) Next() colorful.Color {
	return Random(s.rng, s.palette)
}

func (s *Source) Palette() Palette { return s.palette }
