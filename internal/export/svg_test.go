package export

import (
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/plinko/internal/palette"
	"github.com/san-kum/plinko/internal/scene"
	"github.com/san-kum/plinko/internal/sim"
	"github.com/san-kum/plinko/internal/world"
)

func TestSceneToSVG(t *testing.T) {
	w := world.New(world.DefaultOptions())

	floor, err := scene.Boundary(scene.DefaultCanvas, scene.DefaultWallThickness, palette.Gray)
	if err != nil {
		t.Fatalf("boundary: %v", err)
	}
	if _, err := w.Add(floor); err != nil {
		t.Fatalf("add: %v", err)
	}

	ball := scene.BodySpec{
		Label:    "ball",
		Position: cp.Vector{X: 400, Y: 150},
		Parts:    []scene.PartSpec{scene.CirclePart(cp.Vector{}, 10, palette.Blue)},
		Material: scene.DefaultMaterial,
	}
	b, err := w.Add(ball)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := w.Pin("pin", b, cp.Vector{X: 400, Y: 50}, cp.Vector{}, 1); err != nil {
		t.Fatalf("pin: %v", err)
	}

	hidden := ball
	hidden.Label = "hidden"
	hidden.Position = cp.Vector{X: 200, Y: 150}
	hidden.Parts = []scene.PartSpec{scene.CirclePart(cp.Vector{}, 10, palette.Red)}
	hidden.Parts[0].Render.Visible = false
	if _, err := w.Add(hidden); err != nil {
		t.Fatalf("add: %v", err)
	}

	svg := SceneToSVG(w, sim.NewView(scene.DefaultCanvas, palette.White))

	tests := []struct {
		name  string
		token string
		count int
	}{
		{"boundary slabs", "<polygon", 3},
		{"visible circles", "<circle", 1},
		{"pin line", "<line", 1},
		{"background", `fill="#ffffff"`, 1},
		{"ball fill", `fill="#0000ff"`, 1},
		{"body groups", "<g id=", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.Count(svg, tt.token); got != tt.count {
				t.Errorf("count(%q) = %d, want %d", tt.token, got, tt.count)
			}
		})
	}

	if !strings.Contains(svg, `viewBox="0.0 0.0 800.0 600.0"`) {
		t.Error("viewBox does not match the view")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("svg not closed")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("single value should produce no plot")
	}

	svg := SeriesToSVG([]float64{0, 5, 10, 5}, 300, 100, "#00ff00")
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("missing stroke color")
	}
	if got := strings.Count(svg, " L"); got != 3 {
		t.Errorf("expected 3 line segments, got %d", got)
	}
	if !strings.Contains(svg, "M0.0,") {
		t.Error("path should start at x=0")
	}
}
