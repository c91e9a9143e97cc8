package export

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/snowtype/internal/fx"
	"github.com/san-kum/snowtype/internal/viz"
)

// minOpacity is the point below which an erased shape is dropped.
const minOpacity = 1e-3

type shape struct {
	x0, y0, x1, y1 float64 // bounds
	opacity        float64
	body           string // element without its opacity attribute
}

// SVGSurface records drawing calls as vector shapes so a headless run can be
// written out as an SVG document. Destination-out fills fade every shape
// whose bounds they touch, which matches the full-surface fades the fields
// use.
type SVGSurface struct {
	width, height float64
	op            viz.Composite
	shapes        []shape
}

func NewSVGSurface(w, h float64) *SVGSurface {
	return &SVGSurface{width: w, height: h}
}

func (s *SVGSurface) Size() (float64, float64) { return s.width, s.height }

// Resize takes the new size in pixels.
func (s *SVGSurface) Resize(w, h float64) {
	s.width, s.height = w, h
}

func (s *SVGSurface) SetComposite(op viz.Composite) { s.op = op }

func (s *SVGSurface) Clear() { s.shapes = s.shapes[:0] }

func (s *SVGSurface) ClearRect(x, y, w, h float64) {
	s.erase(x, y, x+w, y+h, 1)
}

func (s *SVGSurface) FillRect(x, y, w, h float64, c colorful.Color, alpha float64) {
	if s.op == viz.DestinationOut {
		s.erase(x, y, x+w, y+h, alpha)
		return
	}
	s.add(shape{
		x0: x, y0: y, x1: x + w, y1: y + h,
		opacity: alpha,
		body:    fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"`, x, y, w, h, hex(c)),
	})
}

func (s *SVGSurface) FillCircle(cx, cy, r float64, c colorful.Color, alpha float64) {
	if s.op == viz.DestinationOut {
		s.erase(cx-r, cy-r, cx+r, cy+r, alpha)
		return
	}
	s.add(shape{
		x0: cx - r, y0: cy - r, x1: cx + r, y1: cy + r,
		opacity: alpha,
		body:    fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"`, cx, cy, r, hex(c)),
	})
}

func (s *SVGSurface) StrokePolyline(pts []fx.Vec2, width float64, c colorful.Color, alpha float64) {
	if len(pts) == 0 {
		return
	}
	x0, y0, x1, y1 := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	var d strings.Builder
	for i, p := range pts {
		x0, y0 = min(x0, p.X), min(y0, p.Y)
		x1, y1 = max(x1, p.X), max(y1, p.Y)
		if i == 0 {
			d.WriteString(fmt.Sprintf("M%.1f,%.1f", p.X, p.Y))
		} else {
			d.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}
	if s.op == viz.DestinationOut {
		s.erase(x0, y0, x1, y1, alpha)
		return
	}
	s.add(shape{
		x0: x0, y0: y0, x1: x1, y1: y1,
		opacity: alpha,
		body: fmt.Sprintf(`<path d="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linecap="round" stroke-linejoin="round"`,
			d.String(), hex(c), width),
	})
}

func (s *SVGSurface) add(sh shape) {
	if sh.opacity <= 0 {
		return
	}
	sh.opacity = math.Min(sh.opacity, 1)
	s.shapes = append(s.shapes, sh)
}

func (s *SVGSurface) erase(x0, y0, x1, y1, alpha float64) {
	alpha = math.Max(0, math.Min(alpha, 1))
	live := s.shapes[:0]
	for _, sh := range s.shapes {
		if sh.x1 >= x0 && sh.x0 <= x1 && sh.y1 >= y0 && sh.y0 <= y1 {
			sh.opacity *= 1 - alpha
		}
		if sh.opacity >= minOpacity {
			live = append(live, sh)
		}
	}
	s.shapes = live
}

// Len returns the number of visible shapes.
func (s *SVGSurface) Len() int { return len(s.shapes) }

func (s *SVGSurface) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.width, s.height, s.width, s.height, Background))
	for _, sh := range s.shapes {
		sb.WriteString(sh.body)
		sb.WriteString(fmt.Sprintf(` opacity="%.3f"/>`, sh.opacity))
		sb.WriteString("\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}
