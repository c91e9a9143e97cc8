package viz

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/snowtype/internal/fx"
)

// Composite selects how subsequent fills combine with what is already drawn.
type Composite int

const (
	// SourceOver paints on top of existing content.
	SourceOver Composite = iota
	// DestinationOut erases existing content in proportion to the fill alpha.
	DestinationOut
)

// Surface is a 2D raster the effect fields draw on. Drawing coordinates are
// in surface pixels and Size reports the extent in the same units. Resize
// takes the viewport size in host units (terminal cells for Canvas, window
// pixels for the raylib surface), matching what the host publishes on its
// resize events.
type Surface interface {
	Size() (w, h float64)
	Resize(w, h float64)
	Clear()
	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64, c colorful.Color, alpha float64)
	FillCircle(cx, cy, r float64, c colorful.Color, alpha float64)
	StrokePolyline(pts []fx.Vec2, width float64, c colorful.Color, alpha float64)
	SetComposite(op Composite)
}

// MustHex parses a #rrggbb color, falling back to white.
func MustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}

// Palette parses a list of hex colors.
func Palette(hexes ...string) []colorful.Color {
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		out[i] = MustHex(h)
	}
	return out
}
