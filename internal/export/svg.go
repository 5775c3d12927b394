package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/plinko/internal/scene"
	"github.com/san-kum/plinko/internal/sim"
	"github.com/san-kum/plinko/internal/world"
)

// SceneToSVG draws every visible part of w with its current fill, in draw
// order, followed by the visible constraints. The viewBox is the view's
// LookAt rectangle.
func SceneToSVG(w *world.World, view sim.View) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="%.1f %.1f %.1f %.1f">
<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`,
		view.Canvas.Width, view.Canvas.Height,
		view.Min.X, view.Min.Y, view.Width(), view.Height(),
		view.Min.X, view.Min.Y, view.Width(), view.Height(), view.Background.Clamped().Hex()))

	for _, b := range w.Bodies() {
		sb.WriteString(fmt.Sprintf("<g id=\"body-%d\" data-label=%q>\n", b.ID, b.Label))
		for _, p := range b.Parts {
			if !p.Render.Visible {
				continue
			}
			writePart(&sb, p)
		}
		sb.WriteString("</g>\n")
	}

	for _, c := range w.Constraints() {
		if !c.Render.Visible {
			continue
		}
		a, b := c.WorldAnchors()
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>
`, a.X, a.Y, b.X, b.Y, c.Render.Stroke.Clamped().Hex(), c.Render.StrokeWidth))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writePart(sb *strings.Builder, p *world.Part) {
	fill := p.Render.Fill.Clamped().Hex()
	stroke := "none"
	if p.Render.StrokeWidth > 0 {
		stroke = p.Render.Stroke.Clamped().Hex()
	}

	if p.Spec.Kind == scene.Circle {
		c := p.WorldCenter()
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"/>
`, c.X, c.Y, p.Spec.Radius, fill, stroke, p.Render.StrokeWidth))
		return
	}

	points := make([]string, 0, 4)
	for _, v := range p.Corners() {
		points = append(points, fmt.Sprintf("%.1f,%.1f", v.X, v.Y))
	}
	sb.WriteString(fmt.Sprintf(`<polygon points="%s" fill="%s" stroke="%s" stroke-width="%.1f"/>
`, strings.Join(points, " "), fill, stroke, p.Render.StrokeWidth))
}

// SeriesToSVG plots values against their index as a polyline, e.g. the
// kinetic energy of a stored run.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	hi += span * 0.1
	span = hi - lo
	last := float64(len(values) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-lo)/span*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
