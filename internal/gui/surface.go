package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/snowtype/internal/fx"
	"github.com/san-kum/snowtype/internal/viz"
)

// OpenGL blend constants for the custom destination-out mode.
const (
	glZero             = 0
	glOneMinusSrcAlpha = 0x0303
	glFuncAdd          = 0x8006
)

// Surface is a viz.Surface backed by a raylib render texture. Draw calls
// must happen between Begin and End.
type Surface struct {
	target rl.RenderTexture2D
	w, h   int32
	op     viz.Composite
}

func NewSurface(w, h int) *Surface {
	s := &Surface{}
	s.Resize(float64(w), float64(h))
	return s
}

func (s *Surface) Size() (float64, float64) { return float64(s.w), float64(s.h) }

// Resize takes window pixels and reallocates the texture, dropping its
// contents.
func (s *Surface) Resize(w, h float64) {
	nw, nh := int32(math.Max(1, w)), int32(math.Max(1, h))
	if nw == s.w && nh == s.h {
		return
	}
	if s.w > 0 {
		rl.UnloadRenderTexture(s.target)
	}
	s.w, s.h = nw, nh
	s.target = rl.LoadRenderTexture(nw, nh)
	rl.BeginTextureMode(s.target)
	rl.ClearBackground(rl.Blank)
	rl.EndTextureMode()
}

func (s *Surface) Begin() { rl.BeginTextureMode(s.target) }

func (s *Surface) End() {
	if s.op != viz.SourceOver {
		rl.EndBlendMode()
		s.op = viz.SourceOver
	}
	rl.EndTextureMode()
}

func (s *Surface) SetComposite(op viz.Composite) {
	if op == s.op {
		return
	}
	if s.op != viz.SourceOver {
		rl.EndBlendMode()
	}
	if op == viz.DestinationOut {
		rl.SetBlendFactors(glZero, glOneMinusSrcAlpha, glFuncAdd)
		rl.BeginBlendMode(rl.BlendCustom)
	}
	s.op = op
}

func (s *Surface) Clear() { rl.ClearBackground(rl.Blank) }

func (s *Surface) ClearRect(x, y, w, h float64) {
	prev := s.op
	s.SetComposite(viz.DestinationOut)
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), rl.Black)
	s.SetComposite(prev)
}

func (s *Surface) FillRect(x, y, w, h float64, c colorful.Color, alpha float64) {
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), toColor(c, alpha))
}

func (s *Surface) FillCircle(cx, cy, r float64, c colorful.Color, alpha float64) {
	rl.DrawCircleV(rl.NewVector2(float32(cx), float32(cy)), float32(r), toColor(c, alpha))
}

func (s *Surface) StrokePolyline(pts []fx.Vec2, width float64, c colorful.Color, alpha float64) {
	col := toColor(c, alpha)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		rl.DrawLineEx(rl.NewVector2(float32(a.X), float32(a.Y)), rl.NewVector2(float32(b.X), float32(b.Y)), float32(width), col)
	}
}

// Draw blits the texture to the screen at the origin. Render textures are
// stored upside down, hence the negative source height.
func (s *Surface) Draw() {
	src := rl.NewRectangle(0, 0, float32(s.w), -float32(s.h))
	rl.DrawTextureRec(s.target.Texture, src, rl.NewVector2(0, 0), rl.White)
}

func (s *Surface) Unload() {
	if s.w > 0 {
		rl.UnloadRenderTexture(s.target)
		s.w, s.h = 0, 0
	}
}

func toColor(c colorful.Color, alpha float64) rl.Color {
	r, g, b := c.Clamped().RGB255()
	a := uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 255))
	return rl.NewColor(r, g, b, a)
}
