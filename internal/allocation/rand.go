package allocation

import "math/rand"

// Rand is the caller-supplied random source threaded through recipe selection
// and every sell/donate draw. There is no hidden global: seeding one source
// makes a whole run reproducible. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded random source for one run.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
