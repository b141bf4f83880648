package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/randomlogo/internal/fault"
	"github.com/san-kum/randomlogo/internal/ifs"
	"github.com/san-kum/randomlogo/internal/palette"
	"github.com/san-kum/randomlogo/internal/rng"
)

const (
	DefaultHeight     = 384
	DefaultWidth      = 384
	DefaultPoints     = 100_000
	DefaultIFS        = "SigmaFactorIFS"
	DefaultDims       = 2
	DefaultRNG        = "Xoshiro256PlusPlus"
	DefaultSeed       = 42
	DefaultBurnIn     = 20
	DefaultChunkSize  = 1 << 16
	DefaultMargin     = 5
	DefaultPalette    = "julia"
	DefaultPolicy     = "average"
	DefaultBackground = "#000000"
	DefaultForeground = "#ffffff"
)

// Config is the render configuration. The first seven fields are the ones a
// config file must describe; the rest tune the renderer and have defaults.
//
// Core code receives a *Config and never mutates it.
type Config struct {
	Height  int    `toml:"height" yaml:"height" json:"height"`
	Width   int    `toml:"width" yaml:"width" json:"width"`
	NPoints int    `toml:"npoints" yaml:"npoints" json:"npoints"`
	IFSName string `toml:"ifs_name" yaml:"ifs_name" json:"ifs_name"`
	NDims   int    `toml:"ndims" yaml:"ndims" json:"ndims"`
	RNGName string `toml:"rng_name" yaml:"rng_name" json:"rng_name"`
	Seed    uint64 `toml:"seed" yaml:"seed" json:"seed"`

	BurnIn     int    `toml:"burn_in" yaml:"burn_in" json:"burn_in"`
	Workers    int    `toml:"workers" yaml:"workers" json:"workers"`
	ChunkSize  int    `toml:"chunk_size" yaml:"chunk_size" json:"chunk_size"`
	Margin     int    `toml:"margin" yaml:"margin" json:"margin"`
	Maps       int    `toml:"maps" yaml:"maps" json:"maps"`
	Palette    string `toml:"palette" yaml:"palette" json:"palette"`
	Policy     string `toml:"policy" yaml:"policy" json:"policy"`
	Background string `toml:"background" yaml:"background" json:"background"`
	Foreground string `toml:"foreground" yaml:"foreground" json:"foreground"`
	Cache      string `toml:"cache,omitempty" yaml:"cache,omitempty" json:"cache,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Height:     DefaultHeight,
		Width:      DefaultWidth,
		NPoints:    DefaultPoints,
		IFSName:    DefaultIFS,
		NDims:      DefaultDims,
		RNGName:    DefaultRNG,
		Seed:       DefaultSeed,
		BurnIn:     DefaultBurnIn,
		ChunkSize:  DefaultChunkSize,
		Margin:     DefaultMargin,
		Palette:    DefaultPalette,
		Policy:     DefaultPolicy,
		Background: DefaultBackground,
		Foreground: DefaultForeground,
	}
}

// Clone returns a copy the caller may modify.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Load reads a TOML config, or YAML when the extension is .yaml or .yml.
// Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		_, err = toml.Decode(string(data), cfg)
	}
	if err != nil {
		return nil, fault.Wrap(fault.Configuration, "config.Load", err, "parse %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	if isYAML(path) {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		data = out
	} else {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Validate checks every field eagerly and reports the first problem as a
// configuration error.
func (c *Config) Validate() error {
	const op = "config"
	switch {
	case c.Width <= 0:
		return fault.Configf(op, "width must be positive, got %d", c.Width)
	case c.Height <= 0:
		return fault.Configf(op, "height must be positive, got %d", c.Height)
	case c.NPoints < 0:
		return fault.Configf(op, "npoints must be non-negative, got %d", c.NPoints)
	case c.NDims != 2:
		return fault.Configf(op, "unsupported dimension: %d", c.NDims)
	case c.BurnIn < 0:
		return fault.Configf(op, "burn_in must be non-negative, got %d", c.BurnIn)
	case c.Workers < 0:
		return fault.Configf(op, "workers must be non-negative, got %d", c.Workers)
	case c.ChunkSize < 0:
		return fault.Configf(op, "chunk_size must be non-negative, got %d", c.ChunkSize)
	case c.Margin < 0:
		return fault.Configf(op, "margin must be non-negative, got %d", c.Margin)
	case c.Maps != 0 && (c.Maps < ifs.MinMaps || c.Maps > ifs.MaxMaps):
		return fault.Configf(op, "maps must be 0 or in [%d, %d], got %d", ifs.MinMaps, ifs.MaxMaps, c.Maps)
	}
	if _, err := c.IFSKind(); err != nil {
		return err
	}
	if _, err := c.RNGKind(); err != nil {
		return err
	}
	if _, err := c.PaletteKind(); err != nil {
		return err
	}
	if _, err := palette.ParseHex(c.Background); err != nil {
		return err
	}
	if _, err := palette.ParseHex(c.Foreground); err != nil {
		return err
	}
	return nil
}

func (c *Config) IFSKind() (ifs.Kind, error) { return ifs.ParseKind(c.IFSName) }

func (c *Config) RNGKind() (rng.Kind, error) { return rng.ParseKind(c.RNGName) }

func (c *Config) PaletteKind() (palette.Kind, error) { return palette.ParseKind(c.Palette) }

// NewRand builds the generator named by rng_name, seeded with seed.
func (c *Config) NewRand() (*rng.Rand, error) {
	kind, err := c.RNGKind()
	if err != nil {
		return nil, err
	}
	return rng.New(kind, c.Seed)
}

// GeneratorOptions maps the config onto IFS generator options.
func (c *Config) GeneratorOptions() (ifs.Options, error) {
	opts := ifs.DefaultOptions()
	pk, err := c.PaletteKind()
	if err != nil {
		return opts, err
	}
	opts.Maps = c.Maps
	opts.Palette = pk
	return opts, nil
}

// EffectiveChunkSize resolves the zero value to the default.
func (c *Config) EffectiveChunkSize() int {
	if c.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return c.ChunkSize
}
