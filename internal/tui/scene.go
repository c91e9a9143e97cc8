package tui

import (
	"log"
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/snowtype/internal/frontend"
	"github.com/san-kum/snowtype/internal/lightning"
	"github.com/san-kum/snowtype/internal/particle"
	"github.com/san-kum/snowtype/internal/sim"
	"github.com/san-kum/snowtype/internal/snow"
	"github.com/san-kum/snowtype/internal/viz"
)

// Pixels per braille dot for each layer. Snow and sparks move in whole
// pixels per frame, so coarser layers keep them from crossing the screen
// too fast.
const (
	snowScale  = 4
	sparkScale = 3
	boltScale  = 2
)

// scene owns the effect layers drawn behind the text, bottom to top:
// snow, lightning, sparks.
type scene struct {
	bus   *sim.Bus
	rng   *rand.Rand
	opts  frontend.Options
	w, h  int
	snow  *snow.Field
	spark *particle.Field
	bolt  *lightning.Field

	snowCanvas  *viz.Canvas
	sparkCanvas *viz.Canvas
	boltCanvas  *viz.Canvas
}

func newScene(opts frontend.Options, w, h int) (*scene, error) {
	s := &scene{
		bus:         sim.NewBus(float64(w), float64(h)),
		rng:         opts.Rand,
		opts:        opts,
		w:           w,
		h:           h,
		snowCanvas:  viz.NewCanvas(w, h, snowScale),
		sparkCanvas: viz.NewCanvas(w, h, sparkScale),
		boltCanvas:  viz.NewCanvas(w, h, boltScale),
	}
	if opts.Snow {
		so := snow.DefaultOptions()
		so.Count = opts.SnowCount
		so.Smoothing = opts.Smoothing
		so.Palette = opts.Theme.SnowPalette()
		so.FPS = opts.FPS
		f, err := snow.New(s.snowCanvas, so, s.rng)
		if err != nil {
			return nil, err
		}
		s.snow = f
	}
	if opts.Sparks {
		po := particle.DefaultOptions()
		po.Lifespan = opts.SparkLifespan
		po.Palette = opts.Theme.SparkPalette()
		po.FPS = opts.FPS
		f, err := particle.New(s.sparkCanvas, po, s.rng)
		if err != nil {
			return nil, err
		}
		s.spark = f
	}
	return s, nil
}

func (s *scene) start() tea.Cmd {
	var cmds []tea.Cmd
	if s.snow != nil {
		cmds = append(cmds, s.snow.Start(s.bus))
	}
	if s.spark != nil {
		cmds = append(cmds, s.spark.Start(s.bus))
	}
	return tea.Batch(cmds...)
}

func (s *scene) stop() {
	if s.snow != nil {
		s.snow.Stop()
	}
	if s.spark != nil {
		s.spark.Stop()
	}
	if s.bolt != nil {
		s.bolt.Stop()
	}
}

// update routes a frame to whichever layer owns it.
func (s *scene) update(msg sim.FrameMsg) tea.Cmd {
	switch {
	case s.snow != nil && msg.ID == s.snow.Loop().ID():
		return s.snow.Update(msg)
	case s.spark != nil && msg.ID == s.spark.Loop().ID():
		return s.spark.Update(msg)
	case s.bolt != nil && msg.ID == s.bolt.Loop().ID():
		return s.bolt.Update(msg)
	}
	return nil
}

func (s *scene) resize(w, h int) {
	s.w, s.h = w, h
	s.bus.Resize(float64(w), float64(h))
	// The bolt canvas follows the bus only while a bolt is alive.
	if s.boltCanvas.Width != w || s.boltCanvas.Height != h {
		s.boltCanvas.Resize(float64(w), float64(h))
	}
}

func (s *scene) pointer(col, row int) {
	s.bus.Pointer(float64(col), float64(row))
}

// cellCenter converts a terminal cell to the pixel at its center on a
// layer drawn at the given scale.
func cellCenter(col, row int, scale float64) (x, y float64) {
	return (float64(col)*2 + 1) * scale, (float64(row)*4 + 2) * scale
}

func (s *scene) burst(col, row, n int) {
	if s.spark == nil {
		return
	}
	x, y := cellCenter(col, row, sparkScale)
	s.spark.SpawnBurst(x, y, n)
}

// strike replaces any running bolt with a new one rooted at the cell.
func (s *scene) strike(col, row int) tea.Cmd {
	if !s.opts.Lightning {
		return nil
	}
	if s.bolt != nil {
		s.bolt.Stop()
	}
	s.boltCanvas.Clear()
	lo := lightning.DefaultOptions()
	lo.Color = s.opts.Theme.BoltColor()
	lo.FPS = s.opts.FPS
	x, y := cellCenter(col, row, boltScale)
	bolt, err := lightning.New(s.boltCanvas, x, y, lo, s.rng)
	if err != nil {
		log.Printf("tui: lightning: %v", err)
		return nil
	}
	s.bolt = bolt
	return bolt.Start(s.bus)
}

// boltActive reports whether a bolt is still drawing or fading.
func (s *scene) boltActive() bool {
	return s.bolt != nil && !s.bolt.Done()
}

func (s *scene) draw(f *viz.Frame) {
	if s.snow != nil {
		f.Blit(s.snowCanvas, 0, 0)
	}
	if s.bolt != nil {
		f.Blit(s.boltCanvas, 0, 0)
	}
	if s.spark != nil {
		f.Blit(s.sparkCanvas, 0, 0)
	}
}
