package config

import "sort"

// Presets adjust the default configuration. "beats" is the default run.
var Presets = map[string]func(*Config){
	"beats": func(c *Config) {},
	"in_phase": func(c *Config) {
		c.InitState = InitStateConfig{X1: 1.5, X2: 1.5}
	},
	"anti_phase": func(c *Config) {
		c.InitState = InitStateConfig{X1: 1.5, X2: -1.5}
	},
	"weak_coupling": func(c *Config) {
		c.Physics.K2 = 1.0
	},
	"no_coupling": func(c *Config) {
		c.Physics.K2 = 0
	},
	"kick": func(c *Config) {
		c.InitState = InitStateConfig{V1: 4.0}
	},
}

func GetPreset(preset string) *Config {
	apply, ok := Presets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
