package export

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/snowtype/internal/viz"
)

// Background is the page color behind every exported image.
const Background = "#0c0a09"

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot
// carrying the dot's color and alpha.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	dw, dh := canvas.DotSize()
	width := float64(dw) * scale
	height := float64(dh) * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g>
`, width, height, width, height, Background))

	dotRadius := scale * 0.4

	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			col, a := canvas.Dot(x, y)
			if a < viz.DotThreshold {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.2f"/>
`, cx, cy, dotRadius, col.Clamped().Hex(), a))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG plots samples left to right as a polyline, e.g. the speed
// history of a session.
func SeriesToSVG(samples []float64, width, height int, strokeColor string) string {
	if len(samples) < 2 {
		return ""
	}

	minY, maxY := samples[0], samples[0]
	for _, v := range samples {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, Background, strokeColor))

	last := float64(len(samples) - 1)
	for i, v := range samples {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

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

func hex(c colorful.Color) string { return c.Clamped().Hex() }
