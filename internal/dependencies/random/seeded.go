package random

import (
	"math/rand/v2"
	"sync"
)

// SeededRandom implements Random with a deterministic PCG source.
// The same seed always yields the same sequence.
type SeededRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded creates a SeededRandom for the given seed
func NewSeeded(seed int64) *SeededRandom {
	s := uint64(seed)
	return &SeededRandom{rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

// Intn returns a pseudo-random int in [0, n)
func (r *SeededRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

func (r *SeededRandom) String(length int, alphabet string) string {
	return pick(length, alphabet, r.Intn)
}

func (r *SeededRandom) Seed() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Int64N(MaxSeed)
}
