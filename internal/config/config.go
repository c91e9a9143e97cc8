package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTheme         = "winter"
	DefaultFPS           = 60
	DefaultVolume        = 0.4
	DefaultSnowCount     = 600
	DefaultSmoothing     = 0.25
	DefaultSparkCount    = 10
	DefaultSparkLifespan = 60
	DefaultWindowWidth   = 1280
	DefaultWindowHeight  = 720
	MaxFPS               = 240
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Theme     string          `yaml:"theme"`
	FPS       int             `yaml:"fps"`
	Seed      int64           `yaml:"seed"`
	Sentences string          `yaml:"sentences"`
	Sound     bool            `yaml:"sound"`
	Volume    float64         `yaml:"volume"`
	Window    WindowConfig    `yaml:"window"`
	Snow      SnowConfig      `yaml:"snow"`
	Sparks    SparkConfig     `yaml:"sparks"`
	Lightning LightningConfig `yaml:"lightning"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type SnowConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Count     int     `yaml:"count"`
	Smoothing float64 `yaml:"smoothing"`
}

type SparkConfig struct {
	Enabled  bool `yaml:"enabled"`
	Count    int  `yaml:"count"`
	Lifespan int  `yaml:"lifespan"`
}

type LightningConfig struct {
	Enabled bool `yaml:"enabled"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:  DefaultTheme,
		FPS:    DefaultFPS,
		Sound:  true,
		Volume: DefaultVolume,
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Snow: SnowConfig{
			Enabled:   true,
			Count:     DefaultSnowCount,
			Smoothing: DefaultSmoothing,
		},
		Sparks: SparkConfig{
			Enabled:  true,
			Count:    DefaultSparkCount,
			Lifespan: DefaultSparkLifespan,
		},
		Lightning: LightningConfig{Enabled: true},
	}
}

// Load overlays the YAML file at path on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.FPS <= 0 || c.FPS > MaxFPS:
		return fmt.Errorf("%w: fps %d outside (0, %d]", ErrInvalid, c.FPS, MaxFPS)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("%w: volume %.2f outside [0, 1]", ErrInvalid, c.Volume)
	case c.Snow.Count < 0:
		return fmt.Errorf("%w: snow count %d", ErrInvalid, c.Snow.Count)
	case c.Snow.Smoothing <= 0 || c.Snow.Smoothing > 1:
		return fmt.Errorf("%w: snow smoothing %.2f outside (0, 1]", ErrInvalid, c.Snow.Smoothing)
	case c.Sparks.Count < 0:
		return fmt.Errorf("%w: spark count %d", ErrInvalid, c.Sparks.Count)
	case c.Sparks.Lifespan <= 0:
		return fmt.Errorf("%w: spark lifespan %d", ErrInvalid, c.Sparks.Lifespan)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	return nil
}
