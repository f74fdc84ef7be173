package common

import "github.com/chewxy/math32"

const prngModulus = 2147483647

// Wow sums six sine waves of decreasing amplitude into a wobbly curve.
// Wow(0) and Wow(1) are both zero.
func Wow(x float32) float32 {
	return math32.Sin(x*math32.Pi*2)/3 +
		math32.Sin(x*math32.Pi*3)/3 +
		math32.Sin(x*math32.Pi*5)/3 +
		math32.Sin(x*math32.Pi*13)/5 +
		math32.Sin(x*math32.Pi*23)/13 +
		math32.Sin(x*math32.Pi*77)/51
}

// Prng is a Park-Miller minimal standard pseudo-random number generator.
// It is deterministic for a given seed, which keeps precomputed curves stable between runs.
type Prng struct {
	seed uint64
}

// NewPrng creates a Prng from the given seed. A seed that is a multiple of 2^31-1 is remapped
// so the generator never gets stuck at zero.
//
// Parameters:
//   - seed: the initial seed
//
// Returns:
//   - *Prng: the generator
func NewPrng(seed uint32) *Prng {
	s := uint64(seed) % prngModulus
	if s == 0 {
		s += prngModulus - 1
	}
	return &Prng{seed: s}
}

// Next returns the next value in [1, 2^31-2].
func (p *Prng) Next() uint32 {
	p.seed = p.seed * 16807 % prngModulus
	return uint32(p.seed)
}

// NextFloat returns the next value in [0, 1).
func (p *Prng) NextFloat() float32 {
	return float32(p.Next()-1) / (prngModulus - 1)
}
