package scene

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/plinko/internal/palette"
)

func TestPegs_RowPattern(t *testing.T) {
	cfg := DefaultPegConfig
	cfg.Count = 40
	cfg.PerRow = 10

	pegs, err := Pegs(cfg)
	if err != nil {
		t.Fatalf("pegs failed: %v", err)
	}

	perRow := map[float64]int{}
	for _, p := range pegs {
		perRow[p.Position.Y]++
		if !p.Static {
			t.Errorf("%s: expected static peg", p.Label)
		}
		if p.Material.Restitution != 0.2 || p.Material.Friction != 0 {
			t.Errorf("%s: unexpected material %+v", p.Label, p.Material)
		}
	}

	if len(perRow) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(perRow))
	}

	ys := make([]float64, 0, len(perRow))
	for y := range perRow {
		ys = append(ys, y)
	}
	// row 0 is the lowest row on screen (largest y).
	sort.Sort(sort.Reverse(sort.Float64Slice(ys)))

	expected := []int{10, 9, 10, 9}
	for r, y := range ys {
		if perRow[y] != expected[r] {
			t.Errorf("row %d: expected %d pegs, got %d", r, expected[r], perRow[y])
		}
	}

	if len(pegs) != 38 {
		t.Errorf("expected 38 pegs, got %d", len(pegs))
	}
}

func TestPegs_RowSpacing(t *testing.T) {
	tests := []struct {
		radius, gap float64
	}{
		{10, 40},
		{5, 15},
		{7.5, 0},
	}

	for _, tt := range tests {
		cfg := DefaultPegConfig
		cfg.Radius = tt.radius
		cfg.Gap = tt.gap

		pegs, err := Pegs(cfg)
		if err != nil {
			t.Fatalf("pegs failed: %v", err)
		}

		want := tt.radius + tt.gap
		for _, p := range pegs {
			var r, c int
			if _, err := fmt.Sscanf(p.Label, "peg-%d-%d", &r, &c); err != nil {
				t.Fatalf("bad label %q", p.Label)
			}
			if got := cfg.Origin.Y - p.Position.Y; got != float64(r)*want {
				t.Errorf("%s: y offset %f, want %f", p.Label, got, float64(r)*want)
			}
			startX := 0.0
			if r%2 == 1 {
				startX = want / 2
			}
			if got := cfg.Origin.X - p.Position.X; math.Abs(got-(startX+float64(c)*want)) > 1e-9 {
				t.Errorf("%s: x offset %f, want %f", p.Label, got, startX+float64(c)*want)
			}
		}
	}
}

func TestPegs_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PegConfig)
	}{
		{"single peg per row", func(c *PegConfig) { c.PerRow = 1 }},
		{"zero per row", func(c *PegConfig) { c.PerRow = 0 }},
		{"negative radius", func(c *PegConfig) { c.Radius = -1 }},
		{"negative gap", func(c *PegConfig) { c.Gap = -5 }},
		{"negative count", func(c *PegConfig) { c.Count = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPegConfig
			tt.mutate(&cfg)
			_, err := Pegs(cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Field == "" {
				t.Errorf("expected ConfigError with field, got %v", err)
			}
		})
	}
}

func TestBoundary_NoGaps(t *testing.T) {
	spec, err := Boundary(DefaultCanvas, DefaultWallThickness, palette.Gray)
	if err != nil {
		t.Fatalf("boundary failed: %v", err)
	}

	if !spec.Static {
		t.Error("boundary must be static")
	}
	if len(spec.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(spec.Parts))
	}

	bb := spec.PartBounds()
	floor, left, right := bb[0], bb[1], bb[2]
	const tol = 0.5
	w, h := DefaultCanvas.Width, DefaultCanvas.Height

	near := func(a, b float64) bool { return math.Abs(a-b) <= tol }

	if !near(floor.L, 0) || !near(floor.R, w) {
		t.Errorf("floor spans [%f, %f], want [0, %f]", floor.L, floor.R, w)
	}
	if !(floor.B <= h && floor.T >= h) {
		t.Errorf("floor [%f, %f] does not straddle the bottom edge", floor.B, floor.T)
	}
	if !near(left.B, 0) || !near(left.T, h) || !near(right.B, 0) || !near(right.T, h) {
		t.Errorf("walls do not span the canvas height: left %+v right %+v", left, right)
	}
	if !(left.L <= 0 && left.R >= 0) || !(right.L <= w && right.R >= w) {
		t.Errorf("walls do not straddle the side edges: left %+v right %+v", left, right)
	}
	// corners: each wall reaches below the floor's top edge
	if left.T < floor.B || right.T < floor.B {
		t.Errorf("gap at a bottom corner: floor top %f, wall bottoms %f %f", floor.B, left.T, right.T)
	}
	if floor.L > left.R || floor.R < right.L {
		t.Errorf("floor does not reach the walls")
	}
}

func TestScatter_CountAndBounds(t *testing.T) {
	cfg, err := ScatterPreset("small")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}

	seen := map[int]bool{}
	for seed := int64(1); seed <= 500; seed++ {
		bodies, err := Scatter(rand.New(rand.NewSource(seed)), cfg)
		if err != nil {
			t.Fatalf("scatter failed: %v", err)
		}
		n := len(bodies)
		seen[n] = true
		if n < 3 || n > 13 {
			t.Fatalf("seed %d: count %d outside [3,13]", seed, n)
		}
		for _, b := range bodies {
			if !DefaultCanvas.Contains(b.Position) {
				t.Fatalf("seed %d: %s at %v outside canvas", seed, b.Label, b.Position)
			}
			if r := b.Parts[0].Radius; r < MinScatterRadius || r > cfg.Radius.Max {
				t.Fatalf("seed %d: radius %f outside range", seed, r)
			}
		}
	}

	if !seen[3] || !seen[13] {
		t.Errorf("expected both ends of the count range to occur, saw %v", seen)
	}
}

func TestScatter_Presets(t *testing.T) {
	large, err := ScatterPreset("large")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	bodies, err := Scatter(rand.New(rand.NewSource(3)), large)
	if err != nil {
		t.Fatalf("scatter failed: %v", err)
	}
	for _, b := range bodies {
		if r := b.Parts[0].Radius; r < 20 || r > 70 {
			t.Errorf("large preset radius %f outside [20,70]", r)
		}
	}

	if _, err := ScatterPreset("huge"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for unknown preset, got %v", err)
	}
}

func TestScatter_InvalidConfig(t *testing.T) {
	cfg, _ := ScatterPreset("small")
	cfg.MaxCount = 2

	if _, err := Scatter(rand.New(rand.NewSource(1)), cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	cfg, _ = ScatterPreset("small")
	cfg.Radius = palette.Range{Min: -1, Max: 10}
	if _, err := Scatter(rand.New(rand.NewSource(1)), cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for negative radius, got %v", err)
	}
}

func TestCompound_Centroid(t *testing.T) {
	spec, err := Cross("cross", cp.Vector{X: 200, Y: 200}, 200, palette.Red)
	if err != nil {
		t.Fatalf("cross failed: %v", err)
	}

	if spec.Position.Distance(cp.Vector{X: 200, Y: 200}) > 1e-9 {
		t.Errorf("expected centroid (200,200), got %v", spec.Position)
	}
	if len(spec.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(spec.Parts))
	}
	for i, p := range spec.Parts {
		if p.Offset.Length() > 1e-9 {
			t.Errorf("part %d offset %v, want zero", i, p.Offset)
		}
	}
	if spec.Parts[0].Render.Fill != spec.Parts[1].Render.Fill {
		t.Error("cross bars should share a fill")
	}
}

func TestCluster_Layout(t *testing.T) {
	cfg := DefaultClusterConfig
	cfg.Core = true
	cfg.Fills = []colorful.Color{palette.Red, palette.Blue}

	spec, err := Cluster("cluster", cfg)
	if err != nil {
		t.Fatalf("cluster failed: %v", err)
	}

	if len(spec.Parts) != 6 {
		t.Fatalf("expected 4 corner + 2 core parts, got %d", len(spec.Parts))
	}
	want := cp.Vector{X: 475, Y: 375}
	if spec.Position.Distance(want) > 1e-9 {
		t.Errorf("expected centroid %v, got %v", want, spec.Position)
	}
	if spec.Parts[0].Render.Fill == spec.Parts[1].Render.Fill {
		t.Error("neighbouring parts should get distinct fills")
	}
	// core circles are concentric with the centroid
	for _, p := range spec.Parts[4:] {
		if p.Offset.Length() > 1e-9 {
			t.Errorf("core part offset %v, want zero", p.Offset)
		}
	}

	cfg.Six = true
	spec, err = Cluster("cluster", cfg)
	if err != nil {
		t.Fatalf("cluster failed: %v", err)
	}
	if len(spec.Parts) != 8 {
		t.Errorf("expected 8 parts with six corners and core, got %d", len(spec.Parts))
	}
}

func TestCompound_Invalid(t *testing.T) {
	if _, err := Compound("empty", nil, DefaultMaterial, false); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	_, err := Compound("bad", []PartSpec{CirclePart(cp.Vector{}, 0, palette.Red)}, DefaultMaterial, false)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for zero radius, got %v", err)
	}
}

func TestBall(t *testing.T) {
	spec, err := Ball(rand.New(rand.NewSource(9)), DefaultCanvas, DefaultBallConfig)
	if err != nil {
		t.Fatalf("ball failed: %v", err)
	}
	if spec.Position != (cp.Vector{X: 400, Y: 150}) {
		t.Errorf("unexpected drop point %v", spec.Position)
	}
	if spec.Velocity.X < 0 || spec.Velocity.X > DefaultBallConfig.MaxNudge || spec.Velocity.Y != 0 {
		t.Errorf("unexpected nudge %v", spec.Velocity)
	}
	if err := spec.Validate(); err != nil {
		t.Errorf("ball spec invalid: %v", err)
	}
}
