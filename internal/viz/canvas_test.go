package viz

import (
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != brailleBase|0x1 {
		t.Errorf("cell 0 = %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != brailleBase|0x80 {
		t.Errorf("cell 1 = %U", c.Grid[0][1])
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != brailleBase {
		t.Errorf("cell 0 after unset = %U", c.Grid[0][0])
	}

	// Out of range writes are ignored.
	c.Set(-1, 0)
	c.Set(100, 100)

	c.Clear()
	if strings.Trim(c.String(), "⠀\n") != "" {
		t.Error("canvas not empty after Clear")
	}
}

func TestCanvasTint(t *testing.T) {
	c := NewCanvas(4, 4)
	c.SetPen("#ff0000")
	c.DrawLine(0, 0, 7, 0)
	c.SetPen("")
	c.Set(0, 12)

	for col := 0; col < 4; col++ {
		if c.Tint[0][col] != "#ff0000" {
			t.Errorf("cell (0,%d) tint = %q", col, c.Tint[0][col])
		}
	}
	if c.Tint[3][0] != "" {
		t.Errorf("untinted dot got %q", c.Tint[3][0])
	}
	if !strings.Contains(c.Render(), "⠉") {
		t.Error("rendered output lost the line glyphs")
	}
}

func TestDrawCircleSymmetric(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawCircle(10, 10, 6)

	lit := func(x, y int) bool {
		return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
	}
	for _, p := range [][2]int{{16, 10}, {4, 10}, {10, 16}, {10, 4}} {
		if !lit(p[0], p[1]) {
			t.Errorf("expected dot at %v", p)
		}
	}
	if lit(10, 10) {
		t.Error("circle outline should not light its center")
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	c := NewCanvas(80, 30)
	proj := NewProjection(cp.Vector{}, cp.Vector{X: 800, Y: 600}, c)

	tests := []struct {
		world  cp.Vector
		px, py int
	}{
		{cp.Vector{X: 0, Y: 0}, 0, 0},
		{cp.Vector{X: 400, Y: 300}, 80, 60},
		{cp.Vector{X: 800, Y: 600}, 160, 120},
	}
	for _, tt := range tests {
		x, y := proj.Point(tt.world)
		if x != tt.px || y != tt.py {
			t.Errorf("Point(%v) = (%d,%d), want (%d,%d)", tt.world, x, y, tt.px, tt.py)
		}
		if back := proj.World(x, y); back.Distance(tt.world) > 1e-9 {
			t.Errorf("World(%d,%d) = %v, want %v", x, y, back, tt.world)
		}
	}
	if proj.Length(50) != 10 {
		t.Errorf("Length(50) = %d, want 10", proj.Length(50))
	}
}
