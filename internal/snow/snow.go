// Package snow implements a continuously falling snow field with
// pointer-driven parallax: larger flakes sit closer to the viewer and drift
// further against the pointer's horizontal movement.
package snow

import (
	"math"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/snowtype/internal/fx"
	"github.com/san-kum/snowtype/internal/sim"
	"github.com/san-kum/snowtype/internal/viz"
)

const (
	DefaultCount     = 600
	DefaultSmoothing = 0.25
	MinSize          = 1.0
	MaxSize          = 7.0
)

type Flake struct {
	Pos      fx.Vec2
	BaseX    float64
	Size     float64
	SpeedY   float64
	Angle    float64
	OscSpeed float64
	OscRange float64
	Wind     float64
	Color    colorful.Color
}

type Options struct {
	Count     int
	Smoothing float64
	Palette   []colorful.Color
	FPS       int
}

func DefaultOptions() Options {
	return Options{
		Count:     DefaultCount,
		Smoothing: DefaultSmoothing,
		Palette:   viz.ThemeWinter.SnowPalette(),
		FPS:       sim.DefaultFPS,
	}
}

type Field struct {
	surface viz.Surface
	rng     fx.Rand
	opts    Options
	flakes  []Flake

	// pointer is the smoothed parallax input; target is the latest raw
	// pointer position, both normalized to [-0.5, 0.5].
	pointer float64
	target  float64

	loop   *sim.Loop
	cancel []func()
}

func New(surface viz.Surface, opts Options, r *rand.Rand) (*Field, error) {
	if surface == nil {
		return nil, &fx.FieldError{Field: "snow", Wrapped: fx.ErrNoSurface}
	}
	if r == nil {
		return nil, &fx.FieldError{Field: "snow", Wrapped: fx.ErrNoRand}
	}
	if opts.Count < 0 {
		opts.Count = 0
	}
	if opts.Smoothing <= 0 || opts.Smoothing > 1 {
		opts.Smoothing = DefaultSmoothing
	}
	if len(opts.Palette) == 0 {
		opts.Palette = DefaultOptions().Palette
	}
	f := &Field{
		surface: surface,
		rng:     fx.NewRand(r),
		opts:    opts,
		loop:    sim.NewLoop(opts.FPS),
	}
	w, h := surface.Size()
	f.Initialize(w, h, opts.Count)
	return f, nil
}

func (f *Field) newFlake(width, height float64) Flake {
	size := f.rng.Float(MinSize, MaxSize)
	x := f.rng.Float(0, width)
	return Flake{
		Pos:      fx.V(x, f.rng.Float(0, height)),
		BaseX:    x,
		Size:     size,
		SpeedY:   size * 0.3,
		Angle:    f.rng.Float(0, 2*math.Pi),
		OscSpeed: f.rng.Float(0.01, 0.04),
		OscRange: size * 2,
		Wind:     f.rng.Float(-0.25, 0.25),
		Color:    f.opts.Palette[f.rng.Intn(len(f.opts.Palette))],
	}
}

// Initialize replaces every flake with count fresh ones spread over the
// given area.
func (f *Field) Initialize(width, height float64, count int) {
	f.flakes = make([]Flake, count)
	for i := range f.flakes {
		f.flakes[i] = f.newFlake(width, height)
	}
}

// Advance moves every flake one frame with the given parallax offset.
func (f *Field) Advance(parallax, width, height float64) {
	for i := range f.flakes {
		fl := &f.flakes[i]
		fl.Pos.Y += fl.SpeedY
		fl.Angle += fl.OscSpeed
		fl.Pos.X = fl.BaseX + math.Sin(fl.Angle)*fl.OscRange + fl.Wind

		fl.BaseX -= parallax * (fl.Size / 2)

		if fl.Pos.Y > height {
			fl.Pos.Y = -fl.Size
			fl.BaseX = f.rng.Float(0, width)
		}

		if fl.Pos.X > width {
			fl.Pos.X = -fl.Size
		} else if fl.Pos.X < -fl.Size {
			fl.Pos.X = width
		}
	}
}

// SetPointer records the raw pointer position, normalized to [-0.5, 0.5].
func (f *Field) SetPointer(nx float64) {
	f.target = math.Max(-0.5, math.Min(0.5, nx))
}

// Pointer returns the smoothed pointer position.
func (f *Field) Pointer() float64 { return f.pointer }

// Step eases the pointer toward its target, advances every flake and
// redraws. It satisfies sim.Stepper.
func (f *Field) Step(time.Time) bool {
	f.pointer += (f.target - f.pointer) * f.opts.Smoothing
	w, h := f.surface.Size()
	f.Advance(f.pointer, w, h)
	f.Draw()
	return true
}

func (f *Field) Draw() {
	f.surface.Clear()
	for _, fl := range f.flakes {
		f.surface.FillRect(fl.Pos.X, fl.Pos.Y, fl.Size, fl.Size, fl.Color, 1)
	}
}

func (f *Field) Flakes() []Flake { return f.flakes }

func (f *Field) Len() int { return len(f.flakes) }

func (f *Field) Surface() viz.Surface { return f.surface }

// Start subscribes to resize and pointer events and begins the frame loop.
// A resize repopulates the whole field at the new dimensions.
func (f *Field) Start(bus *sim.Bus) tea.Cmd {
	if bus != nil {
		f.cancel = append(f.cancel,
			bus.OnResize(func(w, h float64) {
				f.surface.Resize(w, h)
				pw, ph := f.surface.Size()
				f.Initialize(pw, ph, f.opts.Count)
			}),
			bus.OnPointer(func(x, y float64) {
				if w, _ := bus.Size(); w > 0 {
					f.SetPointer(x/w - 0.5)
				}
			}),
		)
	}
	return f.loop.Start()
}

func (f *Field) Stop() {
	f.loop.Stop()
	for _, c := range f.cancel {
		c()
	}
	f.cancel = nil
}

func (f *Field) Running() bool { return f.loop.Running() }

func (f *Field) Loop() *sim.Loop { return f.loop }

func (f *Field) Update(msg tea.Msg) tea.Cmd {
	frame, ok := msg.(sim.FrameMsg)
	if !ok || !f.loop.Accept(frame) {
		return nil
	}
	f.Step(frame.Time)
	return f.loop.Next()
}
