package config

import (
	"fmt"
	"sort"
)

// Presets are edits applied on top of DefaultConfig, keyed by scene then
// preset name.
var Presets = map[string]map[string]func(*Config){
	"plinko": {
		"default": func(c *Config) {},
		"dense": func(c *Config) {
			c.Pegs.Count = 84
			c.Pegs.PerRow = 14
			c.Pegs.Radius = 6
			c.Pegs.Gap = 30
			c.Pegs.OriginX = 660
		},
		"bouncy": func(c *Config) {
			c.Ball.Radius = 14
			c.Ball.MaxNudge = 160
			c.Duration = 20
		},
	},
	"compound": {
		"default": func(c *Config) { c.Scene = "compound" },
		"six": func(c *Config) {
			c.Scene = "compound"
			c.Compound.Six = true
			c.Compound.Core = true
		},
		"loose": func(c *Config) {
			c.Scene = "compound"
			c.Compound.PinStiffness = 0.2
		},
	},
	"scatter": {
		"small": func(c *Config) { c.Scene = "scatter" },
		"large": func(c *Config) {
			c.Scene = "scatter"
			c.Scatter.Preset = "large"
		},
		"crowd": func(c *Config) {
			c.Scene = "scatter"
			c.Scatter.MinCount = 20
			c.Scatter.MaxCount = 40
		},
	},
	"mixed": {
		"default": func(c *Config) { c.Scene = "mixed" },
		"zero-g": func(c *Config) {
			c.Scene = "mixed"
			c.Gravity = 0
			c.Duration = 5
		},
	},
}

// GetPreset returns a fresh config with the named preset applied.
func GetPreset(sceneName, preset string) (*Config, error) {
	scenePresets, ok := Presets[sceneName]
	if !ok {
		return nil, fmt.Errorf("%w: no presets for scene %q", ErrUnknownPreset, sceneName)
	}
	apply, ok := scenePresets[preset]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s (available: %v)", ErrUnknownPreset, sceneName, preset, ListPresets(sceneName))
	}
	cfg := DefaultConfig()
	cfg.Scene = sceneName
	apply(cfg)
	return cfg, nil
}

func ListPresets(sceneName string) []string {
	scenePresets, ok := Presets[sceneName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
