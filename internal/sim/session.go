package sim

import (
	"context"

	"github.com/jakecoffman/cp"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/plinko/internal/scene"
	"github.com/san-kum/plinko/internal/world"
)

// View is what a renderer needs besides the world: the visible region and
// the surface color.
type View struct {
	Canvas     scene.Canvas
	Min, Max   cp.Vector
	Background colorful.Color
}

func NewView(canvas scene.Canvas, background colorful.Color) View {
	v := View{Canvas: canvas, Background: background}
	v.LookAt(cp.Vector{}, cp.Vector{X: canvas.Width, Y: canvas.Height})
	return v
}

// LookAt fits the viewport to the rectangle min-max.
func (v *View) LookAt(min, max cp.Vector) {
	v.Min, v.Max = min, max
}

func (v View) Width() float64  { return v.Max.X - v.Min.X }
func (v View) Height() float64 { return v.Max.Y - v.Min.Y }

// Session is a populated world plus the loop that drives it.
type Session struct {
	Title    string
	Requires string
	World    *world.World
	Runner   *Runner
	Pointer  *world.Pointer
	Render   View
	Canvas   scene.Canvas
}

// Start runs the session loop in the background.
func (s *Session) Start(ctx context.Context) {
	s.Runner.Start(ctx)
}

// Stop halts the loop. Calling it again is a no-op.
func (s *Session) Stop() {
	s.Runner.Stop()
}
