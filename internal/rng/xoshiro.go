package rng

import "math/bits"

// Xoshiro256PP is the xoshiro256++ generator of Blackman and Vigna. It
// implements math/rand/v2.Source.
type Xoshiro256PP struct {
	s [4]uint64
}

// NewXoshiro256PP seeds the state from seed with SplitMix64, the same
// expansion rand_xoshiro uses for seed_from_u64.
func NewXoshiro256PP(seed uint64) *Xoshiro256PP {
	x := &Xoshiro256PP{}
	sm := seed
	for i := range x.s {
		x.s[i] = splitMix64(&sm)
	}
	return x
}

func (x *Xoshiro256PP) Uint64() uint64 {
	s := &x.s
	result := bits.RotateLeft64(s[0]+s[3], 23) + s[0]
	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]
	s[2] ^= t
	s[3] = bits.RotateLeft64(s[3], 45)

	return result
}

func splitMix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
