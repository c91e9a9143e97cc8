package config

import "sort"

var Presets = map[string]func(*Config){
	"calm": func(c *Config) {
		c.Snow.Count = 200
		c.Snow.Smoothing = 0.1
		c.Lightning.Enabled = false
	},
	"blizzard": func(c *Config) {
		c.Snow.Count = 1500
		c.Snow.Smoothing = 0.5
		c.Sparks.Count = 16
	},
	"storm": func(c *Config) {
		c.Theme = "ocean"
		c.Snow.Count = 900
		c.Sparks.Count = 20
		c.Sparks.Lifespan = 40
	},
	"minimal": func(c *Config) {
		c.Theme = "minimal"
		c.Sound = false
		c.Snow.Enabled = false
		c.Sparks.Enabled = false
		c.Lightning.Enabled = false
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// Apply layers the named preset over cfg in place.
func (c *Config) Apply(name string) bool {
	apply, ok := Presets[name]
	if ok {
		apply(c)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
