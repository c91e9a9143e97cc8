// Package lightning implements a self-terminating branching bolt. Branches
// grow a point at a time on a slowing schedule, may fork once, flicker while
// drawn, and fade out through a destination-out wash. One second after the
// last branch is gone the surface is cleared and the loop stops.
package lightning

import (
	"log"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/snowtype/internal/fx"
	"github.com/san-kum/snowtype/internal/sim"
	"github.com/san-kum/snowtype/internal/viz"
)

const (
	MinXRange      = 5
	MaxXRange      = 12
	YRange         = 5
	MinPathLimit   = 10
	MaxPathLimit   = 35
	GrowerLimit    = 5.0
	GrowthSlowdown = 1.05

	// Linger is how long an empty field keeps fading before it clears.
	Linger = time.Second
)

var black = colorful.Color{}

type Branch struct {
	Origin      fx.Vec2
	Path        []fx.Vec2
	XRange      int
	YRange      int
	PathLimit   int
	CanSpawn    bool
	HasFired    bool
	Grower      float64
	GrowerLimit float64
	// Parent is the arena index of the branch this one forked from, or -1.
	Parent int
}

type Options struct {
	Color colorful.Color
	FPS   int
}

func DefaultOptions() Options {
	return Options{
		Color: viz.ThemeWinter.BoltColor(),
		FPS:   sim.DefaultFPS,
	}
}

type Field struct {
	surface viz.Surface
	rng     fx.Rand
	opts    Options

	branches []Branch
	spawned  int

	then     time.Time
	finished time.Time
	done     bool

	loop   *sim.Loop
	cancel []func()
}

// New seeds a field with a single spawning branch rooted at (x, y).
func New(surface viz.Surface, x, y float64, opts Options, r *rand.Rand) (*Field, error) {
	if surface == nil {
		return nil, &fx.FieldError{Field: "lightning", Wrapped: fx.ErrNoSurface}
	}
	if r == nil {
		return nil, &fx.FieldError{Field: "lightning", Wrapped: fx.ErrNoRand}
	}
	f := &Field{
		surface: surface,
		rng:     fx.NewRand(r),
		opts:    opts,
		loop:    sim.NewLoop(opts.FPS),
	}
	f.spawn(fx.V(x, y), true, -1)
	return f, nil
}

func (f *Field) spawn(at fx.Vec2, canSpawn bool, parent int) {
	f.branches = append(f.branches, Branch{
		Origin:      at,
		Path:        []fx.Vec2{at},
		XRange:      f.rng.Int(MinXRange, MaxXRange),
		YRange:      YRange,
		PathLimit:   f.rng.Int(MinPathLimit, MaxPathLimit),
		CanSpawn:    canSpawn,
		GrowerLimit: GrowerLimit,
		Parent:      parent,
	})
	f.spawned++
}

// Advance runs one frame at the given time: fade, grow, draw, then check
// for termination. It reports whether the field is still running.
func (f *Field) Advance(now time.Time) bool {
	if f.done {
		return false
	}
	if f.then.IsZero() {
		f.then = now
	}
	delta := float64(now.Sub(f.then)) / float64(time.Millisecond)
	f.then = now

	f.fade()
	f.grow(delta)
	f.render()

	if len(f.branches) > 0 {
		f.finished = time.Time{}
		return true
	}
	if f.finished.IsZero() {
		f.finished = now
	}
	if now.Sub(f.finished) >= Linger {
		f.surface.Clear()
		f.done = true
		f.Stop()
		log.Printf("lightning: cleared after %d branches", f.spawned)
		return false
	}
	return true
}

func (f *Field) fade() {
	w, h := f.surface.Size()
	f.surface.SetComposite(viz.DestinationOut)
	f.surface.FillRect(0, 0, w, h, black, float64(f.rng.Int(1, 30))/100)
	f.surface.SetComposite(viz.SourceOver)
}

func (f *Field) grow(delta float64) {
	for i := len(f.branches) - 1; i >= 0; i-- {
		b := &f.branches[i]
		b.Grower += delta
		if b.Grower < b.GrowerLimit {
			continue
		}
		b.Grower = 0
		b.GrowerLimit *= GrowthSlowdown
		last := b.Path[len(b.Path)-1]
		dx := float64(f.rng.Int(0, b.XRange)) - float64(b.XRange)/2
		dy := float64(f.rng.Int(0, b.YRange))
		b.Path = append(b.Path, last.Add(fx.V(dx, dy)))
		b.HasFired = true
		if len(b.Path) > b.PathLimit {
			f.remove(i)
		}
	}
}

// remove drops branch i and rewrites parent indices that pointed past it.
func (f *Field) remove(i int) {
	f.branches = append(f.branches[:i], f.branches[i+1:]...)
	for j := range f.branches {
		switch p := f.branches[j].Parent; {
		case p == i:
			f.branches[j].Parent = -1
		case p > i:
			f.branches[j].Parent = p - 1
		}
	}
}

func (f *Field) render() {
	w, h := f.surface.Size()
	// Forks appended during the walk are drawn in the same frame.
	for i := 0; i < len(f.branches); i++ {
		opacity := float64(f.rng.Int(10, 100)) / 100
		width := 1.0
		if f.rng.OneIn(30) {
			width = 2
		}
		if f.rng.OneIn(60) {
			width = 3
		}
		if f.rng.OneIn(90) {
			width = 4
		}

		for j := 0; j < len(f.branches[i].Path); j++ {
			if f.branches[i].CanSpawn && f.rng.OneIn(100) {
				f.branches[i].CanSpawn = false
				f.spawn(f.branches[i].Path[j], false, i)
			}
		}

		if !f.branches[i].HasFired {
			f.surface.FillRect(0, 0, w, h, f.opts.Color, float64(f.rng.Int(4, 12))/100)
		}
		if f.rng.OneIn(60) {
			f.surface.FillRect(0, 0, w, h, f.opts.Color, float64(f.rng.Int(1, 3))/100)
		}
		f.surface.StrokePolyline(f.branches[i].Path, width, f.opts.Color, opacity)
	}
}

func (f *Field) Branches() []Branch { return f.branches }

func (f *Field) Len() int { return len(f.branches) }

// Spawned counts every branch ever created, forks included.
func (f *Field) Spawned() int { return f.spawned }

// Done reports whether the field has cleared and torn itself down.
func (f *Field) Done() bool { return f.done }

// FinishedAt returns when the field last became empty, or the zero time.
func (f *Field) FinishedAt() time.Time { return f.finished }

// MaxPathLength returns the longest live path.
func (f *Field) MaxPathLength() int {
	n := 0
	for _, b := range f.branches {
		n = max(n, len(b.Path))
	}
	return n
}

func (f *Field) Surface() viz.Surface { return f.surface }

// Step satisfies sim.Stepper.
func (f *Field) Step(now time.Time) bool { return f.Advance(now) }

func (f *Field) Start(bus *sim.Bus) tea.Cmd {
	if f.done {
		return nil
	}
	if bus != nil {
		f.cancel = append(f.cancel, bus.OnResize(func(w, h float64) {
			f.surface.Resize(w, h)
		}))
	}
	f.then = time.Time{}
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
	if !f.Advance(frame.Time) {
		return nil
	}
	return f.loop.Next()
}
