package render_test

import (
	"context"
	"math"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/randomlogo/internal/config"
	"github.com/san-kum/randomlogo/internal/fault"
	"github.com/san-kum/randomlogo/internal/geom"
	"github.com/san-kum/randomlogo/internal/ifs"
	"github.com/san-kum/randomlogo/internal/palette"
	"github.com/san-kum/randomlogo/internal/render"
	"github.com/san-kum/randomlogo/internal/rng"
)

func scenario() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Height = 100
	cfg.Width = 100
	cfg.NPoints = 10_000
	cfg.Seed = 99
	return cfg
}

// renderConfig runs the whole pipeline: rng from the seed, IFS, chaos game.
func renderConfig(cfg *config.Config, r *render.Renderer) *render.Accumulator {
	src, err := cfg.NewRand()
	Expect(err).NotTo(HaveOccurred())
	opts, err := cfg.GeneratorOptions()
	Expect(err).NotTo(HaveOccurred())
	sys, err := ifs.Generate(src, opts)
	Expect(err).NotTo(HaveOccurred())
	acc, err := r.Render(context.Background(), src, sys, cfg)
	Expect(err).NotTo(HaveOccurred())
	return acc
}

func triangle() *ifs.SigmaFactorIFS {
	corners := []geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: math.Sqrt(3) / 2}}
	maps := make([]ifs.Map, len(corners))
	for i, c := range corners {
		maps[i] = ifs.Map{Affine: geom.ScaleToward(c, 0.5), Weight: 1, Color: palette.Julia[i]}
	}
	sys, err := ifs.New(maps)
	Expect(err).NotTo(HaveOccurred())
	return sys
}

var _ = Describe("Renderer", func() {
	It("renders the seed 99 scenario byte-identically twice", func() {
		a, err := renderConfig(scenario(), render.FromConfig(scenario())).MarshalBinary()
		Expect(err).NotTo(HaveOccurred())
		b, err := renderConfig(scenario(), render.FromConfig(scenario())).MarshalBinary()
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("gives the same buffer sequentially and in parallel", func() {
		cfg := scenario()
		cfg.NPoints = 50_000
		base := render.Renderer{ChunkSize: 1000, BurnIn: 20, Margin: 5}

		seq := base
		seq.Workers = 1
		want := renderConfig(cfg, &seq)

		for _, workers := range []int{2, 3, 8, 64} {
			par := base
			par.Workers = workers
			Expect(renderConfig(cfg, &par).Equal(want)).To(BeTrue(), "workers=%d", workers)
		}
	})

	It("records every point after burn-in", func() {
		cfg := scenario()
		r := &render.Renderer{ChunkSize: 1000, BurnIn: 20, Margin: 5, Workers: 4}
		acc := renderConfig(cfg, r)
		Expect(r.Chunks(cfg.NPoints)).To(Equal(10))
		Expect(r.Recorded(cfg.NPoints)).To(Equal(10_000 - 10*20))
		Expect(acc.TotalCount()).To(Equal(uint64(r.Recorded(cfg.NPoints))))
	})

	It("records nothing when every chunk is shorter than the burn-in", func() {
		cfg := scenario()
		cfg.NPoints = 15
		acc := renderConfig(cfg, &render.Renderer{BurnIn: 20})
		Expect(acc.TotalCount()).To(BeZero())
	})

	It("returns an all-zero buffer for zero points", func() {
		cfg := scenario()
		cfg.NPoints = 0
		acc := renderConfig(cfg, render.FromConfig(cfg))
		Expect(acc.Width()).To(Equal(100))
		Expect(acc.Height()).To(Equal(100))
		Expect(acc.TotalCount()).To(BeZero())
		Expect(acc.MaxCount()).To(BeZero())
	})

	DescribeTable("rejects empty canvases",
		func(w, h int) {
			cfg := scenario()
			cfg.Width, cfg.Height = w, h
			src, _ := rng.New(rng.Xoshiro256PlusPlus, 1)
			_, err := render.FromConfig(cfg).Render(context.Background(), src, triangle(), cfg)
			Expect(fault.IsConfiguration(err)).To(BeTrue())
		},
		Entry("zero width", 0, 100),
		Entry("zero height", 100, 0),
		Entry("both zero", 0, 0),
	)

	It("rejects a system with zero total weight", func() {
		sys, err := ifs.New([]ifs.Map{{Affine: geom.ScaleToward(geom.Vec2{}, 0.5)}})
		Expect(err).NotTo(HaveOccurred())
		src, _ := rng.New(rng.PCG, 1)
		_, err = (&render.Renderer{}).Render(context.Background(), src, sys, scenario())
		Expect(fault.IsConfiguration(err)).To(BeTrue())
	})

	It("keeps the triangle attractor inside the hull of its fixed points", func() {
		src, _ := rng.New(rng.Xoshiro256PlusPlus, 5)
		points, err := render.GeneratePoints(src, triangle(), 20_000, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(HaveLen(20_000 - 20))

		a := geom.Vec2{X: 0, Y: 0}
		b := geom.Vec2{X: 1, Y: 0}
		c := geom.Vec2{X: 0.5, Y: math.Sqrt(3) / 2}
		const eps = 1e-9
		for _, p := range points {
			Expect(b.Sub(a).Cross(p.Sub(a))).To(BeNumerically(">=", -eps))
			Expect(c.Sub(b).Cross(p.Sub(b))).To(BeNumerically(">=", -eps))
			Expect(a.Sub(c).Cross(p.Sub(c))).To(BeNumerically(">=", -eps))
		}
	})

	It("fills the canvas up to the margin", func() {
		cfg := scenario()
		src, _ := rng.New(rng.Xoshiro256PlusPlus, 5)
		acc, err := (&render.Renderer{BurnIn: 20, Margin: 5}).Render(context.Background(), src, triangle(), cfg)
		Expect(err).NotTo(HaveOccurred())

		rows := acc.RowProfile()
		cols := acc.ColumnProfile()
		for i := 0; i < 5; i++ {
			Expect(rows[i]).To(BeZero())
			Expect(rows[99-i]).To(BeZero())
			Expect(cols[i]).To(BeZero())
			Expect(cols[99-i]).To(BeZero())
		}
		Expect(rows[5]).To(BeNumerically(">", 0))
		Expect(cols[5]).To(BeNumerically(">", 0))
		Expect(cols[94]).To(BeNumerically(">", 0))
	})

	It("stops on a canceled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		src, _ := rng.New(rng.Xoshiro256PlusPlus, 1)
		acc, err := (&render.Renderer{ChunkSize: 100}).Render(ctx, src, triangle(), scenario())
		Expect(err).To(MatchError(context.Canceled))
		Expect(acc).To(BeNil())
	})

	It("reports progress for both passes", func() {
		var calls, finished, wrongTotal atomic.Int64
		r := &render.Renderer{ChunkSize: 1000, Workers: 4, Progress: func(done, total int) {
			calls.Add(1)
			if total != 20 {
				wrongTotal.Add(1)
			}
			if done == total {
				finished.Add(1)
			}
		}}
		src, _ := rng.New(rng.Xoshiro256PlusPlus, 1)
		_, err := r.Render(context.Background(), src, triangle(), scenario())
		Expect(err).NotTo(HaveOccurred())
		Expect(calls.Load()).To(Equal(int64(20)))
		Expect(finished.Load()).To(Equal(int64(1)))
		Expect(wrongTotal.Load()).To(BeZero())
	})

	It("works with either generator kind", func() {
		for _, kind := range rng.Kinds() {
			cfg := scenario()
			cfg.RNGName = kind.String()
			acc := renderConfig(cfg, render.FromConfig(cfg))
			Expect(acc.TotalCount()).To(Equal(uint64(render.FromConfig(cfg).Recorded(cfg.NPoints))))
		}
	})
})
