// Package rng implements the deterministic seeded generator for match
// simulation.
//
// # Determinism
//
// A Source is seeded from a string and produces the same infinite draw
// sequence for the same seed. Matches created without a seed fall back to
// a fixed default seed so every simulation remains replayable. The
// generator is not cryptographic: reproducibility is the goal, not
// unpredictability.
package rng

import "strconv"

// DefaultSeed is used when a match is created without a seed.
const DefaultSeed = "arena-default"

// fnv-1a parameters for the 32-bit seeding hash.
const (
	fnvOffset uint32 = 2166136261
	fnvPrime  uint32 = 16777619
)

// Source is a deterministic pseudo-random source. It is not safe for
// concurrent use; each turn owns its own Source.
type Source struct {
	state uint32
}

// Normalize maps an empty seed to the fixed default seed.
func Normalize(seed string) string {
	if seed == "" {
		return DefaultSeed
	}
	return seed
}

// New creates a Source seeded from the given string. Empty seeds are
// normalized to DefaultSeed.
func New(seed string) *Source {
	state := fnvOffset
	for _, b := range []byte(Normalize(seed)) {
		state ^= uint32(b)
		state *= fnvPrime
	}
	// xorshift has a single absorbing state at zero.
	if state == 0 {
		state = 0x9E3779B9
	}
	return &Source{state: state}
}

// ForTurn derives the Source for one turn of a match. Binding the turn
// number into the seed keeps each turn's draw sequence independent of how
// many draws earlier turns consumed.
func ForTurn(seed string, turn int) *Source {
	return New(Normalize(seed) + "#" + strconv.Itoa(turn))
}

// next advances the state via xorshift32 and a final multiply mix.
func (s *Source) next() uint32 {
	x := s.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	s.state = x
	return x * 2654435761
}

// Float64 returns the next draw in [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.next()) / (1 << 32)
}

// Intn returns a uniform draw in [0, n). It panics if n is not positive,
// mirroring math/rand.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with non-positive n")
	}
	return int(s.Float64() * float64(n))
}
