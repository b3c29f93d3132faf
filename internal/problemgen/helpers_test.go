package problemgen

import (
	"math/rand/v2"

	"github.com/abhisek/mathdrill/internal/difficulty"
)

// scriptedRand replays fixed values, reduced modulo n. Once the script is
// exhausted it keeps returning 0.
type scriptedRand struct {
	vals []int
	i    int
}

func (s *scriptedRand) IntN(n int) int {
	if s.i >= len(s.vals) {
		return 0
	}
	v := s.vals[s.i] % n
	s.i++
	return v
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func mustProfile(code string) difficulty.Profile {
	p, err := difficulty.ByCode(code)
	if err != nil {
		panic(err)
	}
	return p
}

// rejectAll fails every question.
type rejectAll struct{}

func (rejectAll) Name() string { return "reject-all" }

func (rejectAll) Validate(*Question, Input) *ValidationError {
	return &ValidationError{Validator: "reject-all", Message: "no", Retryable: true}
}
