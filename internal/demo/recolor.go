package demo

import (
	"github.com/san-kum/plinko/internal/palette"
	"github.com/san-kum/plinko/internal/world"
)

// Recolor paints both parts of every pair in the batch with fresh colors
// from src. Only render state is touched.
func Recolor(src *palette.Source) world.Handler {
	return func(ev world.CollisionEvent) {
		for _, p := range ev.Pairs {
			p.A.Render.Fill = src.Next()
			p.B.Render.Fill = src.Next()
		}
	}
}
