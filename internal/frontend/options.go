// Package frontend holds the settings shared by the terminal and window
// front ends.
package frontend

import (
	"math/rand"
	"time"

	"github.com/san-kum/snowtype/internal/audio"
	"github.com/san-kum/snowtype/internal/config"
	"github.com/san-kum/snowtype/internal/fx"
	"github.com/san-kum/snowtype/internal/sentence"
	"github.com/san-kum/snowtype/internal/viz"
)

// Options configures a typing or ambient front end.
type Options struct {
	Theme  viz.Theme
	FPS    int
	Source sentence.Source
	Rand   *rand.Rand
	Player audio.Player
	Clock  func() time.Time

	Snow      bool
	SnowCount int
	Smoothing float64

	Sparks        bool
	SparkCount    int
	SparkLifespan int

	Lightning bool
}

// FromConfig maps a loaded config onto front-end options. A nil
// player means silence.
func FromConfig(cfg *config.Config, src sentence.Source, player audio.Player) Options {
	if player == nil {
		player = audio.Nop{}
	}
	return Options{
		Theme:         viz.GetTheme(cfg.Theme),
		FPS:           cfg.FPS,
		Source:        src,
		Rand:          fx.Seeded(cfg.Seed),
		Player:        player,
		Snow:          cfg.Snow.Enabled,
		SnowCount:     cfg.Snow.Count,
		Smoothing:     cfg.Snow.Smoothing,
		Sparks:        cfg.Sparks.Enabled,
		SparkCount:    cfg.Sparks.Count,
		SparkLifespan: cfg.Sparks.Lifespan,
		Lightning:     cfg.Lightning.Enabled,
	}
}

// Defaults fills zero fields with their default values.
func (o *Options) Defaults() {
	if o.FPS <= 0 {
		o.FPS = config.DefaultFPS
	}
	if o.Source == nil {
		o.Source = sentence.Builtin()
	}
	if o.Rand == nil {
		o.Rand = fx.Seeded(0)
	}
	if o.Player == nil {
		o.Player = audio.Nop{}
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Theme.Name == "" {
		o.Theme = viz.ThemeWinter
	}
}
