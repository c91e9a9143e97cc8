package viz

import (
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/snowtype/internal/fx"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleBase = 0x2800
	// DotThreshold is the alpha at which a dot is considered lit.
	DotThreshold = 0.12
)

type dot struct {
	c colorful.Color
	a float64
}

// Canvas is a braille raster with per-dot color and alpha. Each terminal
// cell holds 2x4 dots; Scale surface pixels map onto one dot.
type Canvas struct {
	Width, Height int // in cells
	Scale         float64

	dots []dot
	op   Composite
}

func NewCanvas(w, h int, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	c := &Canvas{Scale: scale}
	c.resizeCells(w, h)
	return c
}

func (c *Canvas) resizeCells(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
	c.dots = make([]dot, w*2*h*4)
}

func (c *Canvas) dotsW() int { return c.Width * 2 }
func (c *Canvas) dotsH() int { return c.Height * 4 }

// Size returns the canvas extent in surface pixels.
func (c *Canvas) Size() (float64, float64) {
	return float64(c.dotsW()) * c.Scale, float64(c.dotsH()) * c.Scale
}

// Resize takes the viewport size in terminal cells. Size reports the
// resulting extent in surface pixels.
func (c *Canvas) Resize(w, h float64) {
	c.resizeCells(int(w), int(h))
}

func (c *Canvas) SetComposite(op Composite) { c.op = op }

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.dots {
		c.dots[i] = dot{}
	}
}

func (c *Canvas) ClearRect(x, y, w, h float64) {
	x0, y0, x1, y1 := c.span(x, y, w, h)
	for dy := y0; dy < y1; dy++ {
		for dx := x0; dx < x1; dx++ {
			c.dots[dy*c.dotsW()+dx] = dot{}
		}
	}
}

func (c *Canvas) FillRect(x, y, w, h float64, col colorful.Color, alpha float64) {
	x0, y0, x1, y1 := c.span(x, y, w, h)
	for dy := y0; dy < y1; dy++ {
		for dx := x0; dx < x1; dx++ {
			c.plot(dx, dy, col, alpha)
		}
	}
}

func (c *Canvas) FillCircle(cx, cy, r float64, col colorful.Color, alpha float64) {
	px, py := cx/c.Scale, cy/c.Scale
	rd := r / c.Scale
	if rd < 0.5 {
		c.plot(int(math.Floor(px)), int(math.Floor(py)), col, alpha)
		return
	}
	for dy := int(math.Floor(py - rd)); dy <= int(math.Ceil(py+rd)); dy++ {
		for dx := int(math.Floor(px - rd)); dx <= int(math.Ceil(px+rd)); dx++ {
			ox := float64(dx) + 0.5 - px
			oy := float64(dy) + 0.5 - py
			if ox*ox+oy*oy <= rd*rd {
				c.plot(dx, dy, col, alpha)
			}
		}
	}
}

func (c *Canvas) StrokePolyline(pts []fx.Vec2, width float64, col colorful.Color, alpha float64) {
	if len(pts) == 0 {
		return
	}
	thick := int(math.Round(width / c.Scale))
	if thick < 1 {
		thick = 1
	}
	// A dot is stamped once per stroke so overlapping segments do not
	// accumulate alpha.
	stamped := make(map[int]bool)
	stamp := func(x, y int) {
		for oy := 0; oy < thick; oy++ {
			for ox := 0; ox < thick; ox++ {
				px, py := x+ox-thick/2, y+oy-thick/2
				if !c.inside(px, py) {
					continue
				}
				k := py*c.dotsW() + px
				if stamped[k] {
					continue
				}
				stamped[k] = true
				c.plot(px, py, col, alpha)
			}
		}
	}
	prev := pts[0]
	if len(pts) == 1 {
		stamp(c.toDot(prev.X), c.toDot(prev.Y))
		return
	}
	for _, p := range pts[1:] {
		c.line(c.toDot(prev.X), c.toDot(prev.Y), c.toDot(p.X), c.toDot(p.Y), stamp)
		prev = p
	}
}

// Alpha returns the alpha of the dot at (x, y) in dot coordinates.
func (c *Canvas) Alpha(x, y int) float64 {
	if !c.inside(x, y) {
		return 0
	}
	return c.dots[y*c.dotsW()+x].a
}

// Dot returns the color and alpha of the dot at (x, y) in dot coordinates.
func (c *Canvas) Dot(x, y int) (colorful.Color, float64) {
	if !c.inside(x, y) {
		return colorful.Color{}, 0
	}
	d := c.dots[y*c.dotsW()+x]
	return d.c, d.a
}

// DotSize returns the raster size in dots.
func (c *Canvas) DotSize() (w, h int) { return c.dotsW(), c.dotsH() }

// Lit counts dots at or above DotThreshold.
func (c *Canvas) Lit() int {
	n := 0
	for _, d := range c.dots {
		if d.a >= DotThreshold {
			n++
		}
	}
	return n
}

// Cell returns the braille rune and color of a terminal cell. ok is false
// when no dot in the cell is lit.
func (c *Canvas) Cell(col, row int) (r rune, fg colorful.Color, ok bool) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return 0, fg, false
	}
	pattern := 0
	best := dot{}
	for sy := 0; sy < 4; sy++ {
		for sx := 0; sx < 2; sx++ {
			d := c.dots[(row*4+sy)*c.dotsW()+col*2+sx]
			if d.a < DotThreshold {
				continue
			}
			pattern |= pixelMap[sy][sx]
			if d.a > best.a {
				best = d
			}
		}
	}
	if pattern == 0 {
		return 0, fg, false
	}
	black := colorful.Color{}
	return rune(brailleBase + pattern), black.BlendRgb(best.c, math.Min(best.a, 1)).Clamped(), true
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			if r, _, ok := c.Cell(col, row); ok {
				b.WriteRune(r)
			} else {
				b.WriteRune(brailleBase)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (c *Canvas) plot(x, y int, col colorful.Color, alpha float64) {
	if !c.inside(x, y) || alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	d := &c.dots[y*c.dotsW()+x]
	switch c.op {
	case DestinationOut:
		d.a *= 1 - alpha
		if d.a < 1e-3 {
			*d = dot{}
		}
	default:
		outA := alpha + d.a*(1-alpha)
		if outA <= 0 {
			*d = dot{}
			return
		}
		w := d.a * (1 - alpha) / outA
		d.c = col.BlendRgb(d.c, w)
		d.a = outA
	}
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.dotsW() && y < c.dotsH()
}

func (c *Canvas) toDot(v float64) int {
	return int(math.Floor(v / c.Scale))
}

// span converts a pixel rectangle to a clipped dot range. A rectangle
// smaller than a dot still covers the dot its origin falls in.
func (c *Canvas) span(x, y, w, h float64) (x0, y0, x1, y1 int) {
	x0 = c.toDot(x)
	y0 = c.toDot(y)
	x1 = int(math.Ceil((x + w) / c.Scale))
	y1 = int(math.Ceil((y + h) / c.Scale))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.dotsW()), min(y1, c.dotsH())
	return
}

func (c *Canvas) line(x0, y0, x1, y1 int, plot func(x, y int)) {
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
		plot(x0, y0)
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

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
