package engine

import "math/rand"

// Rand is the injectable random source used for order tie-breaks. Tests
// supply a fixed-sequence or seeded implementation so tie-break outcomes
// are reproducible; production wiring supplies a seeded math/rand source.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded Rand.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
