package problemgen

import (
	"fmt"

	"github.com/abhisek/mathdrill/internal/difficulty"
)

// Step is one binary operation of a question.
type Step struct {
	A, B   int
	Op     difficulty.Operation
	Result int
}

// StepGenerator draws single steps that satisfy a profile's constraints.
type StepGenerator struct {
	rng         Rand
	maxAttempts int
}

// NewStepGenerator creates a StepGenerator. maxAttempts <= 0 uses 50.
func NewStepGenerator(rng Rand, maxAttempts int) *StepGenerator {
	if maxAttempts <= 0 {
		maxAttempts = 50
	}
	return &StepGenerator{rng: rng, maxAttempts: maxAttempts}
}

// Generate draws a step for op. When fixed is non-nil the step is chained
// and its first operand is *fixed; otherwise it is the first step of a
// question. Returns ErrStepExhausted when no draw satisfies the profile.
func (g *StepGenerator) Generate(p difficulty.Profile, op difficulty.Operation, fixed *int) (Step, error) {
	first := fixed == nil
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		a, b, ok := g.draw(p, op, fixed)
		if !ok {
			continue
		}
		if first && op == difficulty.Subtraction && a < b {
			a, b = b, a
		}
		if acceptStep(p, op, a, b, first) {
			return Step{A: a, B: b, Op: op, Result: op.Apply(a, b)}, nil
		}
	}
	return Step{}, fmt.Errorf("%w: %s %s after %d attempts", ErrStepExhausted, p.Code, op, g.maxAttempts)
}

// draw samples operands according to the profile's shape.
func (g *StepGenerator) draw(p difficulty.Profile, op difficulty.Operation, fixed *int) (int, int, bool) {
	max := p.MaxNumber
	switch p.Shape() {
	case difficulty.ShapeTens:
		var a int
		if fixed != nil {
			a = *fixed
		} else {
			tens := max/10 - 1
			if tens < 1 {
				tens = 1
			}
			a = 10 * between(g.rng, 1, tens)
		}
		room := a / 10
		if op == difficulty.Addition {
			room = (max - a) / 10
		}
		if room < 1 {
			return 0, 0, false
		}
		return a, 10 * between(g.rng, 1, room), true

	case difficulty.ShapeTwoPlusOne:
		a := between(g.rng, 10, 99)
		if fixed != nil {
			a = *fixed
		}
		return a, between(g.rng, 0, 9), true

	default:
		a := between(g.rng, 0, max)
		if fixed != nil {
			a = *fixed
		}
		return a, between(g.rng, 0, max), true
	}
}

// acceptStep applies the range and carry/borrow rules to a drawn step.
func acceptStep(p difficulty.Profile, op difficulty.Operation, a, b int, first bool) bool {
	columns := p.Shape().Columns()
	switch op {
	case difficulty.Addition:
		if a+b > p.MaxNumber {
			return false
		}
		return p.AllowCarry || !HasCarry(a, b, columns)
	case difficulty.Subtraction:
		if a < b {
			return false
		}
		if first && a == 0 && b == 0 {
			return false
		}
		return p.AllowBorrow || !HasBorrow(a, b, columns)
	}
	return false
}
