package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jakecoffman/cp"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
// starting at U+2800.
const brailleBase = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells, each addressable as 2x4 sub-pixels.
// Every cell remembers the last pen color drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Tint          [][]string

	pen string
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Tint:   make([][]string, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Tint[i] = make([]string, w)
	}
	c.Clear()
	return c
}

// PixelWidth and PixelHeight are the canvas size in sub-pixels.
func (c *Canvas) PixelWidth() int  { return c.Width * 2 }
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

// SetPen sets the color used for subsequent dots. Empty means uncolored.
func (c *Canvas) SetPen(hex string) { c.pen = hex }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Set lights the sub-pixel (x, y).
func (c *Canvas) Set(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
	if c.pen != "" {
		c.Tint[row][col] = c.pen
	}
}

func (c *Canvas) Unset(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] &^= pixelMap[y%4][x%2]
	if c.Grid[row][col] < brailleBase {
		c.Grid[row][col] = brailleBase
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
			c.Tint[i][j] = ""
		}
	}
}

// DrawLine uses Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle outlines a circle with the midpoint algorithm. A radius below
// one sub-pixel lights the center only.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	x, y := r, 0
	d := 1 - r
	for x >= y {
		for _, p := range [8][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}} {
			c.Set(cx+p[0], cy+p[1])
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// DrawPolygon closes the outline through pts.
func (c *Canvas) DrawPolygon(pts [][2]int) {
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		c.DrawLine(a[0], a[1], b[0], b[1])
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render is String with each cell colored by its tint.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if tint := c.Tint[i][j]; tint != "" && r != brailleBase {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(tint)).Render(string(r)))
				continue
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Projection maps a world rectangle onto the sub-pixels of a canvas.
type Projection struct {
	Min, Max cp.Vector
	W, H     int
}

func NewProjection(min, max cp.Vector, c *Canvas) Projection {
	return Projection{Min: min, Max: max, W: c.PixelWidth(), H: c.PixelHeight()}
}

func (p Projection) sx() float64 { return float64(p.W) / (p.Max.X - p.Min.X) }
func (p Projection) sy() float64 { return float64(p.H) / (p.Max.Y - p.Min.Y) }

// Point projects a world point to sub-pixel coordinates.
func (p Projection) Point(v cp.Vector) (int, int) {
	return int(math.Round((v.X - p.Min.X) * p.sx())), int(math.Round((v.Y - p.Min.Y) * p.sy()))
}

// Length scales a world distance using the smaller axis scale.
func (p Projection) Length(d float64) int {
	return int(math.Round(d * math.Min(p.sx(), p.sy())))
}

// World maps sub-pixel coordinates back to a world point.
func (p Projection) World(x, y int) cp.Vector {
	return cp.Vector{X: float64(x)/p.sx() + p.Min.X, Y: float64(y)/p.sy() + p.Min.Y}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
