package config

import "sort"

var Presets = map[string]*Config{
	"small": {
		Height: 100, Width: 100, NPoints: 10_000,
	},
	"medium": {
		Height: DefaultHeight, Width: DefaultWidth, NPoints: DefaultPoints,
	},
	"thumbnail": {
		Height: 200, Width: 200, NPoints: 50_000,
	},
	"large": {
		Height: 1024, Width: 1024, NPoints: 2_000_000, Policy: "density",
	},
	"poster": {
		Height: 3000, Width: 2000, NPoints: 20_000_000, Policy: "density", Palette: "hue",
	},
	"mono": {
		Height: DefaultHeight, Width: DefaultWidth, NPoints: DefaultPoints, Policy: "mask",
		Foreground: "#4063d8",
	},
}

// GetPreset returns a full config built from the named preset over the
// defaults, or nil when the name is unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Height = p.Height
	cfg.Width = p.Width
	cfg.NPoints = p.NPoints
	if p.Policy != "" {
		cfg.Policy = p.Policy
	}
	if p.Palette != "" {
		cfg.Palette = p.Palette
	}
	if p.Foreground != "" {
		cfg.Foreground = p.Foreground
	}
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

// ApplyPreset copies the canvas and styling fields of the named preset onto
// c, keeping seed, names and tuning. It reports false for unknown presets.
func (c *Config) ApplyPreset(name string) bool {
	p := GetPreset(name)
	if p == nil {
		return false
	}
	c.Height = p.Height
	c.Width = p.Width
	c.NPoints = p.NPoints
	c.Policy = p.Policy
	c.Palette = p.Palette
	c.Foreground = p.Foreground
	return true
}
