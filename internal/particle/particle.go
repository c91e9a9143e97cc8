// Package particle implements short-lived keystroke bursts: discs that fly
// outward from a point and fade linearly over a fixed number of frames.
package particle

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
	DefaultLifespan  = 60
	DefaultMinSpeed  = 1.0
	DefaultMaxSpeed  = 4.0
	DefaultMinRadius = 1.0
	DefaultMaxRadius = 3.0
)

type Particle struct {
	Pos      fx.Vec2
	Vel      fx.Vec2
	Radius   float64
	Color    colorful.Color
	Age      int
	Lifespan int
}

// Opacity fades linearly from 1 at birth to 0 at the end of the lifespan.
func (p Particle) Opacity() float64 {
	if p.Lifespan <= 0 {
		return 0
	}
	o := 1 - float64(p.Age)/float64(p.Lifespan)
	return math.Max(0, math.Min(1, o))
}

type Options struct {
	Lifespan             int
	MinSpeed, MaxSpeed   float64
	MinRadius, MaxRadius float64
	Palette              []colorful.Color
	FPS                  int
}

func DefaultOptions() Options {
	return Options{
		Lifespan:  DefaultLifespan,
		MinSpeed:  DefaultMinSpeed,
		MaxSpeed:  DefaultMaxSpeed,
		MinRadius: DefaultMinRadius,
		MaxRadius: DefaultMaxRadius,
		Palette:   viz.ThemeWinter.SparkPalette(),
		FPS:       sim.DefaultFPS,
	}
}

type Field struct {
	surface   viz.Surface
	rng       fx.Rand
	opts      Options
	particles []Particle
	loop      *sim.Loop
	cancel    []func()
}

func New(surface viz.Surface, opts Options, r *rand.Rand) (*Field, error) {
	if surface == nil {
		return nil, &fx.FieldError{Field: "particle", Wrapped: fx.ErrNoSurface}
	}
	if r == nil {
		return nil, &fx.FieldError{Field: "particle", Wrapped: fx.ErrNoRand}
	}
	if opts.Lifespan <= 0 {
		opts.Lifespan = DefaultLifespan
	}
	if len(opts.Palette) == 0 {
		opts.Palette = DefaultOptions().Palette
	}
	return &Field{
		surface: surface,
		rng:     fx.NewRand(r),
		opts:    opts,
		loop:    sim.NewLoop(opts.FPS),
	}, nil
}

// SpawnBurst adds count particles at (x, y), each with a uniformly random
// heading.
func (f *Field) SpawnBurst(x, y float64, count int) {
	for i := 0; i < count; i++ {
		angle := f.rng.Float(0, 2*math.Pi)
		speed := f.rng.Float(f.opts.MinSpeed, f.opts.MaxSpeed)
		f.particles = append(f.particles, Particle{
			Pos:      fx.V(x, y),
			Vel:      fx.Polar(speed, angle),
			Radius:   f.rng.Float(f.opts.MinRadius, f.opts.MaxRadius),
			Color:    f.opts.Palette[f.rng.Intn(len(f.opts.Palette))],
			Lifespan: f.opts.Lifespan,
		})
	}
}

// Advance moves every particle dtFrames frames forward and drops the ones
// whose age reached their lifespan.
func (f *Field) Advance(dtFrames int) {
	for n := 0; n < dtFrames; n++ {
		live := f.particles[:0]
		for _, p := range f.particles {
			p.Pos = p.Pos.Add(p.Vel)
			p.Age++
			if p.Age >= p.Lifespan {
				continue
			}
			live = append(live, p)
		}
		f.particles = live
	}
}

func (f *Field) Draw() {
	f.surface.Clear()
	for _, p := range f.particles {
		f.surface.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, p.Color, p.Opacity())
	}
}

func (f *Field) Len() int { return len(f.particles) }

func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

func (f *Field) Clear() {
	f.particles = f.particles[:0]
	f.surface.Clear()
}

func (f *Field) Surface() viz.Surface { return f.surface }

// Step advances one frame and redraws. It satisfies sim.Stepper.
func (f *Field) Step(time.Time) bool {
	f.Advance(1)
	f.Draw()
	return true
}

// Start subscribes to viewport resizes (bus may be nil) and begins the
// frame loop.
func (f *Field) Start(bus *sim.Bus) tea.Cmd {
	if bus != nil {
		f.cancel = append(f.cancel, bus.OnResize(func(w, h float64) {
			f.surface.Resize(w, h)
		}))
	}
	return f.loop.Start()
}

// Stop cancels the frame loop and drops every bus subscription.
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
