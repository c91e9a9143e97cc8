package gui

import (
	"github.com/san-kum/snowtype/internal/caret"
	"github.com/san-kum/snowtype/internal/fx"
)

const (
	maxColumns = 48
	textTop    = 140.0
)

// Layout places the target sentence on a monospace grid centered in the
// window. Pixel positions are cell centers.
type Layout struct {
	Left, Top float64
	Width     float64
	Columns   int
	CellW     float64
	LineH     float64
}

func NewLayout(winW, winH int, cellW float32, fontSize float64) Layout {
	cw := float64(cellW)
	if cw <= 0 {
		cw = fontSize * 0.6
	}
	cols := min(maxColumns, max(int(float64(winW)*0.8/cw), 10))
	width := float64(cols) * cw
	return Layout{
		Left:    (float64(winW) - width) / 2,
		Top:     textTop,
		Width:   width,
		Columns: cols,
		CellW:   cw,
		LineH:   fontSize * 1.5,
	}
}

func (l Layout) Probe() caret.Probe { return caret.Probe{Width: l.Columns} }

func (l Layout) Pixel(col, row int) (x, y float64) {
	return l.Left + (float64(col)+0.5)*l.CellW, l.Top + (float64(row)+0.5)*l.LineH
}

// Bottom returns the y just below the last row of text.
func (l Layout) Bottom(text string) float64 {
	rows := len(l.Probe().Lines(text))
	return l.Top + float64(rows)*l.LineH
}

// Glyphs returns every distinct rune in the sentences plus printable ASCII,
// for font atlas generation.
func Glyphs(sentences []string) []rune {
	seen := make(map[rune]bool)
	var out []rune
	add := func(r rune) {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	for r := rune(32); r < 127; r++ {
		add(r)
	}
	add('·')
	for _, s := range sentences {
		for _, r := range s {
			add(r)
		}
	}
	return out
}

// SeriesPoints maps samples onto a w×h box at (x, y), higher values up.
func SeriesPoints(samples []float64, x, y, w, h float64) []fx.Vec2 {
	if len(samples) == 0 {
		return nil
	}
	lo, hi := samples[0], samples[0]
	for _, v := range samples {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	last := max(len(samples)-1, 1)
	out := make([]fx.Vec2, len(samples))
	for i, v := range samples {
		out[i] = fx.V(x+float64(i)/float64(last)*w, y+h-(v-lo)/span*h)
	}
	return out
}
