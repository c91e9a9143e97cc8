package gui

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestLayoutCentersText(t *testing.T) {
	l := NewLayout(1280, 720, 16, 28)
	if l.Columns != maxColumns {
		t.Errorf("expected %d columns, got %d", maxColumns, l.Columns)
	}
	if math.Abs(l.Left*2+l.Width-1280) > 1e-9 {
		t.Errorf("expected centered text, left=%f width=%f", l.Left, l.Width)
	}
	x, y := l.Pixel(0, 1)
	if x != l.Left+8 || y != l.Top+l.LineH*1.5 {
		t.Errorf("unexpected cell center (%f, %f)", x, y)
	}
}

func TestLayoutNarrowWindow(t *testing.T) {
	l := NewLayout(100, 400, 16, 28)
	if l.Columns != 10 {
		t.Errorf("expected minimum of 10 columns, got %d", l.Columns)
	}
}

func TestGlyphsDeduplicates(t *testing.T) {
	g := Glyphs([]string{"첫눈", "눈a"})
	count := map[rune]int{}
	for _, r := range g {
		count[r]++
	}
	if count['눈'] != 1 || count['첫'] != 1 || count['a'] != 1 {
		t.Errorf("unexpected glyph counts %v", count)
	}
}

func TestSeriesPoints(t *testing.T) {
	pts := SeriesPoints([]float64{0, 5, 10}, 0, 0, 100, 50)
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	if pts[0].Y != 50 || pts[2].Y != 0 || pts[2].X != 100 {
		t.Errorf("unexpected points %v", pts)
	}
	if SeriesPoints(nil, 0, 0, 1, 1) != nil {
		t.Error("expected nil for no samples")
	}
}

func TestToColor(t *testing.T) {
	c := toColor(colorful.Color{R: 1, G: 0.5, B: 0}, 0.5)
	if c.R != 255 || c.G != 128 || c.B != 0 || c.A != 128 {
		t.Errorf("unexpected color %+v", c)
	}
	if toColor(colorful.Color{}, 3).A != 255 {
		t.Error("alpha must clamp to 1")
	}
}
