package logo

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/san-kum/randomlogo/internal/cache"
	"github.com/san-kum/randomlogo/internal/config"
	"github.com/san-kum/randomlogo/internal/fault"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Width, cfg.Height, cfg.NPoints = 64, 48, 5_000
	cfg.Seed = 99
	return cfg
}

func TestRenderFromConfig(t *testing.T) {
	cfg := smallConfig()
	res, err := RenderFromConfig(context.Background(), cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Accumulator.Width() != 64 || res.Accumulator.Height() != 48 {
		t.Errorf("accumulator is %dx%d", res.Accumulator.Width(), res.Accumulator.Height())
	}
	if res.Stats.Recorded != uint64(cfg.NPoints-cfg.BurnIn) || res.Stats.Chunks != 1 || res.Stats.Cached {
		t.Errorf("unexpected stats %+v", res.Stats)
	}
	if res.IFS.Len() < 2 {
		t.Errorf("IFS has %d maps", res.IFS.Len())
	}

	img, err := res.Image()
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
		t.Errorf("image bounds %v", img.Bounds())
	}
}

func TestRenderFromConfigDeterministic(t *testing.T) {
	a, err := RenderFromConfig(context.Background(), smallConfig(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	cfg := smallConfig()
	cfg.Workers = 3
	cfg.ChunkSize = config.DefaultChunkSize
	b, err := RenderFromConfig(context.Background(), cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !a.Accumulator.Equal(b.Accumulator) {
		t.Error("same seed produced different accumulators")
	}
}

func TestRenderFromConfigCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	first, err := RenderFromConfig(ctx, smallConfig(), Options{Cache: c})
	if err != nil {
		t.Fatal(err)
	}
	second, err := RenderFromConfig(ctx, smallConfig(), Options{Cache: c})
	if err != nil {
		t.Fatal(err)
	}
	if first.Stats.Cached || !second.Stats.Cached {
		t.Errorf("cached = %v, %v", first.Stats.Cached, second.Stats.Cached)
	}
	if !first.Accumulator.Equal(second.Accumulator) {
		t.Error("cached accumulator differs")
	}

	if err := c.Set(ctx, CacheKey(smallConfig()), []byte("garbage"), 0); err != nil {
		t.Fatal(err)
	}
	third, err := RenderFromConfig(ctx, smallConfig(), Options{Cache: c})
	if err != nil {
		t.Fatal(err)
	}
	if third.Stats.Cached || !third.Accumulator.Equal(first.Accumulator) {
		t.Error("malformed entry was not re-rendered")
	}
}

func TestRenderFromConfigOversizedCacheEntry(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	entry := binary.LittleEndian.AppendUint32([]byte("RLA1"), 1<<31)
	entry = binary.LittleEndian.AppendUint32(entry, 1<<31)
	if err := c.Set(ctx, CacheKey(smallConfig()), entry, 0); err != nil {
		t.Fatal(err)
	}

	res, err := RenderFromConfig(ctx, smallConfig(), Options{Cache: c})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Cached || res.Accumulator.Width() != 64 {
		t.Errorf("entry with oversized header was used: %+v", res.Stats)
	}
}

func TestRenderFromConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"zero width", func(c *config.Config) { c.Width = 0 }},
		{"zero height", func(c *config.Config) { c.Height = 0 }},
		{"unknown ifs", func(c *config.Config) { c.IFSName = "Fern" }},
		{"unknown rng", func(c *config.Config) { c.RNGName = "MT" }},
		{"unknown policy", func(c *config.Config) { c.Policy = "binary" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			tt.modify(cfg)
			if _, err := RenderFromConfig(context.Background(), cfg, Options{}); !fault.IsConfiguration(err) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestCacheKey(t *testing.T) {
	base := CacheKey(smallConfig())

	cfg := smallConfig()
	cfg.Workers = 8
	cfg.Policy = "mask"
	cfg.Background = "#123456"
	if CacheKey(cfg) != base {
		t.Error("scheduling and coloring fields changed the key")
	}

	cfg = smallConfig()
	cfg.Seed++
	if CacheKey(cfg) == base {
		t.Error("seed did not change the key")
	}
	cfg = smallConfig()
	cfg.Palette = "hue"
	if CacheKey(cfg) == base {
		t.Error("palette did not change the key")
	}
}
