package viz

import (
	"github.com/san-kum/plinko/internal/scene"
	"github.com/san-kum/plinko/internal/world"
)

// DrawWorld outlines every visible part of w and the visible constraints.
// Parts are tinted with their current fill.
func DrawWorld(c *Canvas, proj Projection, w *world.World) {
	for _, b := range w.Bodies() {
		for _, p := range b.Parts {
			if !p.Render.Visible {
				continue
			}
			c.SetPen(p.Render.Fill.Clamped().Hex())
			drawPart(c, proj, p)
		}
	}

	for _, k := range w.Constraints() {
		if !k.Render.Visible {
			continue
		}
		c.SetPen(k.Render.Stroke.Clamped().Hex())
		a, b := k.WorldAnchors()
		x0, y0 := proj.Point(a)
		x1, y1 := proj.Point(b)
		c.DrawLine(x0, y0, x1, y1)
	}
	c.SetPen("")
}

func drawPart(c *Canvas, proj Projection, p *world.Part) {
	if p.Spec.Kind == scene.Circle {
		x, y := proj.Point(p.WorldCenter())
		c.DrawCircle(x, y, proj.Length(p.Spec.Radius))
		return
	}
	corners := p.Corners()
	pts := make([][2]int, len(corners))
	for i, v := range corners {
		x, y := proj.Point(v)
		pts[i] = [2]int{x, y}
	}
	c.DrawPolygon(pts)
}
