package core

import "math/rand"

// RNG is the single simulation-owned deterministic random source. Every
// random draw in the simulation (spawn jitter, AI waypoints, name/rank
// selection, build-site search) must go through an RNG instance rather than
// the package-level math/rand functions, so that a given seed reproduces an
// identical game.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministically-seeded generator.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

func (g *RNG) Float64() float64          { return g.r.Float64() }
func (g *RNG) Intn(n int) int            { return g.r.Intn(n) }
func (g *RNG) Uniform(lo, hi float64) float64 { return lo + g.r.Float64()*(hi-lo) }

// Pick returns a random element of a non-empty string slice.
func (g *RNG) Pick(options []string) string {
	return options[g.r.Intn(len(options))]
}
