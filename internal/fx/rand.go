package fx

import (
	"math/rand"
	"time"
)

// Rand wraps a random source with the range helpers the fields use.
type Rand struct {
	*rand.Rand
}

func NewRand(r *rand.Rand) Rand {
	return Rand{Rand: r}
}

// Seeded returns a Rand seeded with seed, or with the current time when seed is 0.
func Seeded(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Int returns an integer in [lo, hi], both ends inclusive.
func (r Rand) Int(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Float returns a float in [lo, hi).
func (r Rand) Float(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// OneIn reports true with probability 1/(n+1), matching an inclusive [0,n] roll hitting 0.
func (r Rand) OneIn(n int) bool {
	return r.Int(0, n) == 0
}
