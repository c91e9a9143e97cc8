package frontend

import (
	"testing"

	"github.com/san-kum/snowtype/internal/audio"
	"github.com/san-kum/snowtype/internal/config"
	"github.com/san-kum/snowtype/internal/sentence"
	"github.com/san-kum/snowtype/internal/viz"
)

func TestFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Snow.Count = 42
	cfg.Lightning.Enabled = false

	opts := FromConfig(cfg, sentence.List{"a"}, nil)

	if opts.SnowCount != 42 {
		t.Errorf("expected 42 flakes, got %d", opts.SnowCount)
	}
	if opts.Lightning {
		t.Error("expected lightning disabled")
	}
	if opts.Rand == nil {
		t.Error("expected seeded rand")
	}
	if _, ok := opts.Player.(audio.Nop); !ok {
		t.Errorf("expected silent player for nil, got %T", opts.Player)
	}
	if opts.FPS != cfg.FPS {
		t.Errorf("expected fps %d, got %d", cfg.FPS, opts.FPS)
	}
}

func TestDefaults(t *testing.T) {
	var opts Options
	opts.Defaults()

	if opts.FPS != config.DefaultFPS {
		t.Errorf("expected fps %d, got %d", config.DefaultFPS, opts.FPS)
	}
	if opts.Source == nil || opts.Rand == nil || opts.Player == nil || opts.Clock == nil {
		t.Fatalf("expected all collaborators filled: %+v", opts)
	}
	if opts.Theme.Name != viz.ThemeWinter.Name {
		t.Errorf("expected winter theme, got %q", opts.Theme.Name)
	}

	opts = Options{FPS: 30}
	opts.Defaults()
	if opts.FPS != 30 {
		t.Errorf("explicit fps overwritten: %d", opts.FPS)
	}
}
