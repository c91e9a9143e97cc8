package export

import (
	"strings"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/snowtype/internal/fx"
	"github.com/san-kum/snowtype/internal/viz"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

func TestSVGSurfaceRecordsShapes(t *testing.T) {
	s := NewSVGSurface(100, 50)
	s.FillRect(1, 2, 3, 4, white, 1)
	s.FillCircle(10, 10, 2, white, 0.5)
	s.StrokePolyline([]fx.Vec2{fx.V(0, 0), fx.V(5, 5)}, 2, white, 0.8)

	if s.Len() != 3 {
		t.Fatalf("expected 3 shapes, got %d", s.Len())
	}
	out := s.String()
	for _, want := range []string{"<rect x=\"1.0\"", "<circle cx=\"10.0\"", "M0.0,0.0 L5.0,5.0", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestSVGSurfaceDestinationOut(t *testing.T) {
	s := NewSVGSurface(100, 100)
	s.FillCircle(10, 10, 2, white, 1)
	s.FillCircle(90, 90, 2, white, 1)

	s.SetComposite(viz.DestinationOut)
	s.FillRect(0, 0, 50, 50, colorful.Color{}, 0.5)
	s.SetComposite(viz.SourceOver)

	if !strings.Contains(s.String(), `opacity="0.500"`) {
		t.Error("expected the covered shape to fade to half")
	}

	s.SetComposite(viz.DestinationOut)
	s.FillRect(0, 0, 100, 100, colorful.Color{}, 1)
	if s.Len() != 0 {
		t.Errorf("expected an opaque erase to drop every shape, %d left", s.Len())
	}
}

func TestSVGSurfaceClear(t *testing.T) {
	s := NewSVGSurface(10, 10)
	s.FillRect(0, 0, 1, 1, white, 1)
	s.Clear()
	if s.Len() != 0 {
		t.Error("expected empty surface")
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 1) != "" {
		t.Error("expected empty output for nil canvas")
	}
	c := viz.NewCanvas(2, 1, 1)
	c.FillRect(0, 0, 1, 1, viz.MustHex("#ffffff"), 1)
	c.FillRect(3, 3, 1, 1, viz.MustHex("#ffffff"), 1)
	out := CanvasToSVG(c, 2)
	if got := strings.Count(out, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if !strings.Contains(out, `width="8"`) {
		t.Error("expected width of 4 dots at scale 2")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single sample")
	}
	out := SeriesToSVG([]float64{1, 2, 3}, 100, 50, "#22d3ee")
	if !strings.Contains(out, `stroke="#22d3ee"`) || strings.Count(out, " L") != 2 {
		t.Errorf("unexpected series svg: %s", out)
	}
}
