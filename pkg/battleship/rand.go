package battleship

import (
	"math/rand"
	"time"
)

// Rand is the random source used by random deployment and random targeting.
// *math/rand.Rand satisfies it. Implementations need not be goroutine-safe;
// each Game owns its own source.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a deterministic source for the given seed. A zero seed
// draws one from the clock.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
