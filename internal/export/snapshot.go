package export

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/san-kum/snowtype/internal/lightning"
	"github.com/san-kum/snowtype/internal/particle"
	"github.com/san-kum/snowtype/internal/sim"
	"github.com/san-kum/snowtype/internal/snow"
	"github.com/san-kum/snowtype/internal/viz"
)

type SnapshotOptions struct {
	Width, Height float64
	Frames        int
	FPS           int
	Theme         viz.Theme
	SnowCount     int
	Snow          bool
	Lightning     bool
	Sparks        bool
	// BurstEvery spawns a spark burst every n frames, as if keys were typed.
	BurstEvery int
}

func DefaultSnapshotOptions() SnapshotOptions {
	return SnapshotOptions{
		Width:      960,
		Height:     540,
		Frames:     90,
		FPS:        sim.DefaultFPS,
		Theme:      viz.ThemeWinter,
		SnowCount:  snow.DefaultCount,
		Snow:       true,
		Lightning:  true,
		Sparks:     true,
		BurstEvery: 8,
	}
}

// Snapshot runs the enabled fields headless for opts.Frames frames and
// returns the layers, bottom first.
func Snapshot(ctx context.Context, opts SnapshotOptions, r *rand.Rand) ([]*SVGSurface, error) {
	runner := sim.NewRunner()
	var layers []*SVGSurface

	if opts.Snow {
		surf := NewSVGSurface(opts.Width, opts.Height)
		so := snow.DefaultOptions()
		so.Count = opts.SnowCount
		so.Palette = opts.Theme.SnowPalette()
		f, err := snow.New(surf, so, r)
		if err != nil {
			return nil, err
		}
		runner.Add(f)
		layers = append(layers, surf)
	}
	if opts.Lightning {
		surf := NewSVGSurface(opts.Width, opts.Height)
		lo := lightning.DefaultOptions()
		lo.Color = opts.Theme.BoltColor()
		f, err := lightning.New(surf, opts.Width/2, 0, lo, r)
		if err != nil {
			return nil, err
		}
		runner.Add(f)
		layers = append(layers, surf)
	}
	if opts.Sparks {
		surf := NewSVGSurface(opts.Width, opts.Height)
		po := particle.DefaultOptions()
		po.Palette = opts.Theme.SparkPalette()
		f, err := particle.New(surf, po, r)
		if err != nil {
			return nil, err
		}
		runner.Add(f)
		runner.AddObserver(&typist{field: f, every: opts.BurstEvery, rng: r, w: opts.Width, h: opts.Height})
		layers = append(layers, surf)
	}

	if _, err := runner.Run(ctx, sim.Config{FPS: opts.FPS, Frames: opts.Frames}); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return layers, nil
}

// typist fires spark bursts along a line of imaginary text.
type typist struct {
	field *particle.Field
	every int
	rng   *rand.Rand
	w, h  float64
}

func (t *typist) OnFrame(frame int, _ time.Time) {
	if t.every <= 0 || frame%t.every != 0 {
		return
	}
	x := t.w*0.2 + t.rng.Float64()*t.w*0.6
	t.field.SpawnBurst(x, t.h*0.6, 10)
}

// Compose stacks layers into one SVG document.
func Compose(layers []*SVGSurface) string {
	if len(layers) == 0 {
		return ""
	}
	w, h := layers[0].Size()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, Background))
	for _, l := range layers {
		sb.WriteString("<g>\n")
		for _, sh := range l.shapes {
			sb.WriteString(sh.body)
			sb.WriteString(fmt.Sprintf(` opacity="%.3f"/>`, sh.opacity))
			sb.WriteString("\n")
		}
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// WriteFile writes content to path.
func WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
