package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/snowtype/internal/fx"
)

var white = MustHex("#ffffff")

func TestCanvasSize(t *testing.T) {
	c := NewCanvas(10, 5, 2)
	w, h := c.Size()
	if w != 40 || h != 40 {
		t.Errorf("expected 40x40 pixels, got %.0fx%.0f", w, h)
	}

	c.Resize(20, 10)
	if c.Width != 20 || c.Height != 10 {
		t.Errorf("expected 20x10 cells after resize, got %dx%d", c.Width, c.Height)
	}
	if w, h := c.Size(); w != 80 || h != 80 {
		t.Errorf("expected 80x80 pixels after resize, got %.0fx%.0f", w, h)
	}
}

func TestCanvasCell(t *testing.T) {
	c := NewCanvas(2, 1, 1)
	c.FillRect(0, 0, 1, 1, white, 1)
	c.FillRect(1, 3, 1, 1, white, 1)

	r, _, ok := c.Cell(0, 0)
	if !ok {
		t.Fatal("expected cell to be lit")
	}
	if r != rune(brailleBase|0x1|0x80) {
		t.Errorf("unexpected rune %U", r)
	}
	if _, _, ok := c.Cell(1, 0); ok {
		t.Error("expected second cell to be empty")
	}

	c.ClearRect(0, 0, 2, 4)
	if c.Lit() != 0 {
		t.Errorf("expected no lit dots, got %d", c.Lit())
	}
}

func TestCanvasOutOfBoundsIgnored(t *testing.T) {
	c := NewCanvas(2, 2, 1)
	c.FillRect(-2, 0, 1, 1, white, 1)
	c.FillRect(0, -2, 1, 1, white, 1)
	c.FillRect(100, 100, 1, 1, white, 1)
	c.FillRect(-50, -50, 10, 10, white, 1)
	if c.Lit() != 0 {
		t.Errorf("expected nothing drawn, got %d dots", c.Lit())
	}
}

func TestCanvasDestinationOutFades(t *testing.T) {
	c := NewCanvas(4, 4, 1)
	c.FillRect(0, 0, 8, 16, white, 1)
	before := c.Lit()

	c.SetComposite(DestinationOut)
	c.FillRect(0, 0, 8, 16, MustHex("#000000"), 0.5)
	c.SetComposite(SourceOver)

	if got := c.Alpha(3, 3); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected alpha 0.5 after one fade, got %f", got)
	}
	if c.Lit() != before {
		t.Errorf("half-faded dots should still be lit")
	}

	c.SetComposite(DestinationOut)
	for i := 0; i < 10; i++ {
		c.FillRect(0, 0, 8, 16, MustHex("#000000"), 0.5)
	}
	if c.Lit() != 0 {
		t.Errorf("expected all dots faded out, got %d", c.Lit())
	}
}

func TestCanvasSourceOverAccumulates(t *testing.T) {
	c := NewCanvas(1, 1, 1)
	c.FillRect(0, 0, 1, 1, white, 0.5)
	c.FillRect(0, 0, 1, 1, white, 0.5)
	if got := c.Alpha(0, 0); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("expected alpha 0.75, got %f", got)
	}
}

func TestCanvasSubDotRectCoversOrigin(t *testing.T) {
	c := NewCanvas(4, 4, 4)
	c.FillRect(9, 9, 1, 1, white, 1)
	if c.Alpha(2, 2) == 0 {
		t.Error("expected the dot containing the origin to be lit")
	}
	if c.Lit() != 1 {
		t.Errorf("expected exactly one dot, got %d", c.Lit())
	}
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewCanvas(10, 5, 1)
	c.FillCircle(10, 10, 3, white, 1)
	if c.Alpha(10, 10) == 0 {
		t.Error("expected center lit")
	}
	if c.Alpha(10, 16) != 0 {
		t.Error("expected point outside radius unlit")
	}
}

func TestCanvasStrokePolyline(t *testing.T) {
	c := NewCanvas(10, 5, 1)
	c.StrokePolyline([]fx.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, 1, white, 0.5)
	for x := 0; x <= 10; x++ {
		if got := c.Alpha(x, 0); math.Abs(got-0.5) > 1e-9 {
			t.Fatalf("dot (%d,0): expected alpha 0.5, got %f", x, got)
		}
	}
	if c.Alpha(10, 10) == 0 {
		t.Error("expected polyline end lit")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2, 1)
	c.StrokePolyline([]fx.Vec2{{X: 0, Y: 0}, {X: 5, Y: 0}}, 1, white, 1)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if []rune(lines[1])[0] != brailleBase {
		t.Error("expected empty braille on second row")
	}
}
