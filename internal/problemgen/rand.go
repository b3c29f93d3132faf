package problemgen

import (
	"math/rand/v2"
	"sync"
)

// Rand is the source of randomness used by the generators. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand returns the process-wide random source, safe for concurrent use.
func DefaultRand() Rand { return globalRand{} }

type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.IntN(n)
}

// NewSeededRand returns a deterministic source safe for concurrent use.
func NewSeededRand(seed uint64) Rand {
	return &lockedRand{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// between returns a value in [lo, hi]. Callers guarantee lo <= hi.
func between(rng Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}
