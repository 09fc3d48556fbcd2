package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	seed int64
	r    *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{seed: seed, r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Seed returns the seed the generator was last reset with.
func (r *RNG) Seed() int64 { return r.seed }

// Reseed restarts the sequence from the provided seed.
func (r *RNG) Reseed(seed int64) {
	r.seed = seed
	r.r = rand.New(rand.NewPCG(uint64(seed), 0))
}

// Float64 returns a uniform sample in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Perm returns a random permutation of [0, n).
func (r *RNG) Perm(n int) []int {
	if n <= 0 {
		return nil
	}
	return r.r.Perm(n)
}

// Split derives an independent generator sharing the parent's seed. The
// derived stream is a pure function of the seed and the stream number, and
// never coincides with the parent's own sequence.
func (r *RNG) Split(stream uint64) *RNG {
	return &RNG{seed: r.seed, r: rand.New(rand.NewPCG(uint64(r.seed), stream+1))}
}
