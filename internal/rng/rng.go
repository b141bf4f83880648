// Package rng provides the seedable generators used by the IFS generator and
// the renderer.
//
// Generators are built once from a seed and passed explicitly; nothing in
// this module reads a global random source. Parallel workers get their own
// generator through [Substream] and [Rand.Derive]:
//
//	base := src.Uint64()
//	for i := range chunks {
//	    sub := src.Derive(rng.Substream(base, i))
//	    // sub is owned by one worker
//	}
package rng

import (
	"math/rand/v2"

	"github.com/san-kum/randomlogo/internal/fault"
)

// Kind enumerates the supported generators.
type Kind int

const (
	Xoshiro256PlusPlus Kind = iota
	PCG
)

var kindNames = map[Kind]string{
	Xoshiro256PlusPlus: "Xoshiro256PlusPlus",
	PCG:                "PCG",
}

// Kinds lists the supported generators in declaration order.
func Kinds() []Kind {
	return []Kind{Xoshiro256PlusPlus, PCG}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind resolves a configured rng_name.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return 0, fault.Configf("rng", "unknown RNG: %q", name)
}

// Rand is a math/rand/v2 generator that remembers its kind so substreams
// can be derived from it.
type Rand struct {
	*rand.Rand
	kind Kind
}

// New builds a generator of the given kind from seed.
func New(kind Kind, seed uint64) (*Rand, error) {
	src, err := newSource(kind, seed)
	if err != nil {
		return nil, err
	}
	return &Rand{Rand: rand.New(src), kind: kind}, nil
}

func newSource(kind Kind, seed uint64) (rand.Source, error) {
	switch kind {
	case Xoshiro256PlusPlus:
		return NewXoshiro256PP(seed), nil
	case PCG:
		sm := seed
		return rand.NewPCG(splitMix64(&sm), splitMix64(&sm)), nil
	default:
		return nil, fault.Configf("rng", "unknown RNG kind %d", int(kind))
	}
}

func (r *Rand) Kind() Kind { return r.kind }

// Derive returns a fresh generator of the same kind seeded with seed. It does
// not consume r.
func (r *Rand) Derive(seed uint64) *Rand {
	src, err := newSource(r.kind, seed)
	if err != nil {
		// r was built by New, so its kind is always valid.
		panic(err)
	}
	return &Rand{Rand: rand.New(src), kind: r.kind}
}

// Uniform returns a value in [a, b). Inverted bounds are accepted and yield a
// value in (b, a].
func (r *Rand) Uniform(a, b float64) float64 {
	return a + (b-a)*r.Float64()
}

func (r *Rand) Bool() bool {
	return r.Uint64()&1 == 1
}

// golden is 2^64 / phi, the SplitMix64 increment.
const golden = 0x9e3779b97f4a7c15

// Substream derives the seed of stream index from base: base XOR a
// golden-ratio multiple of index+1. Index 0 never reproduces base itself.
func Substream(base uint64, index int) uint64 {
	return base ^ (uint64(index+1) * golden)
}
