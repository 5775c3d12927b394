package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jakecoffman/cp"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/plinko/internal/scene"
	"github.com/san-kum/plinko/internal/sim"
	"github.com/san-kum/plinko/internal/world"
)

func toColor(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}

func vec(v cp.Vector) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

func drawWorld(w *world.World) {
	for _, b := range w.Bodies() {
		angle := float32(b.Angle() * 180 / math.Pi)
		for _, p := range b.Parts {
			if p.Render.Visible {
				drawPart(p, angle)
			}
		}
	}
	for _, c := range w.Constraints() {
		if !c.Render.Visible {
			continue
		}
		a, b := c.WorldAnchors()
		rl.DrawLineEx(vec(a), vec(b), float32(c.Render.StrokeWidth), toColor(c.Render.Stroke))
	}
}

func drawPart(p *world.Part, angle float32) {
	fill := toColor(p.Render.Fill)
	center := p.WorldCenter()

	if p.Spec.Kind == scene.Circle {
		rl.DrawCircleV(vec(center), float32(p.Spec.Radius), fill)
		if p.Render.StrokeWidth > 0 {
			rl.DrawCircleLines(int32(center.X), int32(center.Y), float32(p.Spec.Radius), toColor(p.Render.Stroke))
		}
		return
	}

	w, h := float32(p.Spec.Width), float32(p.Spec.Height)
	rec := rl.NewRectangle(float32(center.X), float32(center.Y), w, h)
	rl.DrawRectanglePro(rec, rl.NewVector2(w/2, h/2), angle, fill)
}

// drawPointer marks the drag line while a body is held, if the pointer is
// configured visible.
func drawPointer(s *sim.Session) {
	ptr := s.Pointer
	if ptr == nil || !ptr.Visible() || !ptr.Dragging() {
		return
	}
	rl.DrawLineEx(vec(ptr.Anchor()), vec(ptr.Position()), 1, ColPointer)
	rl.DrawCircleV(vec(ptr.Anchor()), 3, ColPointer)
}
