package ifs_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/randomlogo/internal/fault"
	"github.com/san-kum/randomlogo/internal/ifs"
	"github.com/san-kum/randomlogo/internal/palette"
	"github.com/san-kum/randomlogo/internal/rng"
)

type constSource struct{ f float64 }

func (s constSource) Float64() float64 { return s.f }
func (s constSource) IntN(int) int     { return 0 }
func (s constSource) Uint64() uint64   { return 0 }

func newRand(kind rng.Kind, seed uint64) *rng.Rand {
	r, err := rng.New(kind, seed)
	Expect(err).NotTo(HaveOccurred())
	return r
}

var _ = Describe("Generate", func() {
	opts := ifs.DefaultOptions()

	It("keeps every map contractive and above the floor", func() {
		for _, kind := range rng.Kinds() {
			for seed := uint64(0); seed < 300; seed++ {
				sys, err := ifs.Generate(newRand(kind, seed), opts)
				Expect(err).NotTo(HaveOccurred())
				Expect(sys.Len()).To(BeNumerically(">=", ifs.MinMaps))
				Expect(sys.Len()).To(BeNumerically("<=", ifs.MaxMaps))
				for _, c := range sys.Contractions() {
					Expect(c).To(BeNumerically(">", opts.MinContraction))
					Expect(c).To(BeNumerically("<", opts.MaxContraction))
					Expect(c).To(BeNumerically("<", 1))
				}
			}
		}
	})

	It("normalizes weights to a distribution", func() {
		for seed := uint64(0); seed < 50; seed++ {
			sys, err := ifs.Generate(newRand(rng.Xoshiro256PlusPlus, seed), opts)
			Expect(err).NotTo(HaveOccurred())
			for _, w := range sys.Weights() {
				Expect(w).To(BeNumerically(">=", 0))
			}
			Expect(sys.TotalWeight()).To(BeNumerically("~", 1, 1e-12))
		}
	})

	It("is deterministic for a given stream", func() {
		a, err := ifs.Generate(newRand(rng.Xoshiro256PlusPlus, 42), opts)
		Expect(err).NotTo(HaveOccurred())
		b, err := ifs.Generate(newRand(rng.Xoshiro256PlusPlus, 42), opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Maps()).To(Equal(b.Maps()))

		c, err := ifs.Generate(newRand(rng.Xoshiro256PlusPlus, 43), opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Maps()).NotTo(Equal(a.Maps()))
	})

	It("honors a fixed map count", func() {
		o := opts
		for n := ifs.MinMaps; n <= ifs.MaxMaps; n++ {
			o.Maps = n
			sys, err := ifs.Generate(newRand(rng.PCG, 7), o)
			Expect(err).NotTo(HaveOccurred())
			Expect(sys.Len()).To(Equal(n))
		}
	})

	It("colors maps from the selected palette", func() {
		sys, err := ifs.Generate(newRand(rng.Xoshiro256PlusPlus, 1), opts)
		Expect(err).NotTo(HaveOccurred())
		for _, c := range sys.Colors() {
			Expect(palette.Julia).To(ContainElement(c))
		}
	})

	It("rescales maps that reach the upper bound", func() {
		// A zero stream gives the last map singular values (1, 1).
		sys, err := ifs.Generate(constSource{0}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.Len()).To(Equal(2))
		last := sys.Contractions()[1]
		Expect(last).To(BeNumerically("<", opts.MaxContraction))
		Expect(last).To(BeNumerically("~", opts.MaxContraction, 1e-5))
	})

	It("fails with a generation error on a degenerate stream", func() {
		_, err := ifs.Generate(constSource{math.NaN()}, opts)
		Expect(fault.IsGeneration(err)).To(BeTrue())
	})

	DescribeTable("rejects invalid options",
		func(modify func(*ifs.Options)) {
			o := ifs.DefaultOptions()
			modify(&o)
			_, err := ifs.Generate(newRand(rng.PCG, 1), o)
			Expect(fault.IsConfiguration(err)).To(BeTrue())
		},
		Entry("one map", func(o *ifs.Options) { o.Maps = 1 }),
		Entry("five maps", func(o *ifs.Options) { o.Maps = 5 }),
		Entry("zero floor", func(o *ifs.Options) { o.MinContraction = 0 }),
		Entry("expanding ceiling", func(o *ifs.Options) { o.MaxContraction = 1 }),
		Entry("inverted bounds", func(o *ifs.Options) { o.MinContraction, o.MaxContraction = 0.9, 0.5 }),
	)
})

var _ = Describe("SampleSVs", func() {
	It("splits alpha across the maps", func() {
		r := newRand(rng.Xoshiro256PlusPlus, 3)
		for n := 2; n <= 4; n++ {
			alpha := float64(5+n)/2 + 0.25
			svs := ifs.SampleSVs(r, alpha, n)
			Expect(svs).To(HaveLen(n))
			sum := 0.0
			for _, sv := range svs {
				Expect(sv[1]).To(BeNumerically(">=", 0))
				sum += sv[0] + 2*sv[1]
			}
			Expect(sum).To(BeNumerically("~", alpha, 1e-9))
		}
	})
})
