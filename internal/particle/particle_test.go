package particle

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/san-kum/snowtype/internal/fx"
	"github.com/san-kum/snowtype/internal/sim"
	"github.com/san-kum/snowtype/internal/viz"
)

func newField(t *testing.T) *Field {
	t.Helper()
	f, err := New(viz.NewCanvas(40, 12, 1), DefaultOptions(), rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("new field: %v", err)
	}
	return f
}

func TestNewWithoutSurface(t *testing.T) {
	_, err := New(nil, DefaultOptions(), rand.New(rand.NewSource(1)))
	if !errors.Is(err, fx.ErrNoSurface) {
		t.Errorf("expected ErrNoSurface, got %v", err)
	}
}

func TestSpawnBurstCount(t *testing.T) {
	f := newField(t)
	f.SpawnBurst(10, 10, 3)
	before := f.Len()
	f.SpawnBurst(20, 20, 10)
	if f.Len() != before+10 {
		t.Errorf("expected %d particles, got %d", before+10, f.Len())
	}

	f.SpawnBurst(0, 0, 0)
	f.SpawnBurst(0, 0, -4)
	if f.Len() != before+10 {
		t.Error("non-positive count must not spawn")
	}
}

func TestSpawnBurstRanges(t *testing.T) {
	f := newField(t)
	f.SpawnBurst(5, 5, 200)
	opts := DefaultOptions()
	for _, p := range f.Particles() {
		speed := p.Vel.Len()
		if speed < opts.MinSpeed-1e-9 || speed > opts.MaxSpeed {
			t.Fatalf("speed %f out of range", speed)
		}
		if p.Radius < opts.MinRadius || p.Radius > opts.MaxRadius {
			t.Fatalf("radius %f out of range", p.Radius)
		}
		if p.Pos != fx.V(5, 5) || p.Age != 0 || p.Lifespan != DefaultLifespan {
			t.Fatalf("unexpected initial particle %+v", p)
		}
	}
}

func TestExpireAfterLifespan(t *testing.T) {
	f := newField(t)
	f.SpawnBurst(20, 20, 10)

	f.Advance(DefaultLifespan - 1)
	if f.Len() != 10 {
		t.Fatalf("particles expired early: %d left", f.Len())
	}
	for _, p := range f.Particles() {
		if p.Age < 0 || p.Age > p.Lifespan {
			t.Fatalf("age invariant broken: %+v", p)
		}
	}

	f.Advance(1)
	if f.Len() != 0 {
		t.Errorf("expected empty field after lifespan, got %d", f.Len())
	}
}

func TestOpacityLinear(t *testing.T) {
	tests := []struct {
		age  int
		want float64
	}{
		{0, 1},
		{30, 0.5},
		{60, 0},
		{90, 0},
	}
	for _, tt := range tests {
		p := Particle{Age: tt.age, Lifespan: 60}
		if got := p.Opacity(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("age %d: expected %f, got %f", tt.age, tt.want, got)
		}
	}
}

func TestAdvanceMovesByVelocity(t *testing.T) {
	f := newField(t)
	f.SpawnBurst(20, 20, 1)
	p0 := f.Particles()[0]
	f.Advance(3)
	p1 := f.Particles()[0]
	want := p0.Pos.Add(p0.Vel.Scale(3))
	if math.Abs(p1.Pos.X-want.X) > 1e-9 || math.Abs(p1.Pos.Y-want.Y) > 1e-9 {
		t.Errorf("expected %v, got %v", want, p1.Pos)
	}
}

func TestDrawAndLoop(t *testing.T) {
	canvas := viz.NewCanvas(40, 12, 1)
	f, err := New(canvas, DefaultOptions(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	bus := sim.NewBus(40, 12)
	f.Start(bus)
	f.SpawnBurst(40, 24, 8)

	if cmd := f.Update(f.Loop().Frame(time.Now())); cmd == nil {
		t.Error("expected next frame to be scheduled")
	}
	if canvas.Lit() == 0 {
		t.Error("expected particles drawn")
	}

	bus.Resize(20, 6)
	if canvas.Width != 20 || canvas.Height != 6 {
		t.Errorf("expected canvas resized, got %dx%d", canvas.Width, canvas.Height)
	}

	f.Stop()
	if bus.Listeners() != 0 {
		t.Errorf("expected listeners removed, got %d", bus.Listeners())
	}
	if cmd := f.Update(f.Loop().Frame(time.Now())); cmd != nil {
		t.Error("stopped field must not schedule frames")
	}
}
