package neat

import (
	"math/rand"
	"time"
)

// Rand is the random source used by genetic operators.
// *rand.Rand satisfies it; tests pass a seeded one for reproducible runs.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a random source seeded with seed, or with the current time
// when seed is 0. The seed actually used is returned alongside.
func NewRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}
