package problemgen

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathdrill/internal/difficulty"
	"github.com/abhisek/mathdrill/internal/logger"
)

// Composer builds complete questions for a difficulty profile.
type Composer struct {
	rng    Rand
	steps  *StepGenerator
	config Config
	log    *logger.Logger
	now    func() time.Time
}

// New creates a Composer. A nil rng uses DefaultRand; a nil log discards.
func New(rng Rand, cfg Config, log *logger.Logger) *Composer {
	if rng == nil {
		rng = DefaultRand()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 100
	}
	return &Composer{
		rng:    rng,
		steps:  NewStepGenerator(rng, cfg.MaxStepAttempts),
		config: cfg,
		log:    logger.OrNop(log).With("component", "composer"),
		now:    time.Now,
	}
}

// Compose produces the next question for profile p, avoiding the display
// strings of the most recent questions. The only error is a profile that
// can never yield a question; exhausting the attempt budget falls back to
// a reduced-range question with Validated set to false.
func (c *Composer) Compose(p difficulty.Profile, recent []string) (*Question, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	input := Input{Profile: p, Recent: recentWindow(recent, c.config.RecentWindow)}

	if columnarEligible(p) && c.rng.IntN(100) < c.config.ColumnarPercent {
		return c.composeColumnar(input), nil
	}
	return c.composeArithmetic(input), nil
}

// ComposeColumnar produces a single columnar question for p without the
// repetition check.
func (c *Composer) ComposeColumnar(p difficulty.Profile) (*Question, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !columnarEligible(p) {
		return nil, fmt.Errorf("%w: profile %q cannot produce columnar questions", ErrConfiguration, p.Code)
	}
	q := c.buildColumnar(p)
	q.Validated = runValidators(c.config.Validators, q, Input{Profile: p}) == nil
	return q, nil
}

func columnarEligible(p difficulty.Profile) bool {
	return p.MaxNumber > 9 && (p.Allows(difficulty.Addition) || p.Allows(difficulty.Subtraction))
}

func (c *Composer) composeArithmetic(input Input) *Question {
	var lastErr error
	for attempt := 0; attempt < c.config.MaxAttempts; attempt++ {
		q, err := c.buildArithmetic(input.Profile)
		if err != nil {
			lastErr = err
			continue
		}
		if verr := runValidators(c.config.Validators, q, input); verr != nil {
			lastErr = verr
			continue
		}
		q.Validated = true
		return q
	}
	c.log.Warn("generation exhausted, using fallback",
		"profile", input.Profile.Code,
		"attempts", c.config.MaxAttempts,
		"last_error", errString(lastErr))
	return c.fallback(input.Profile)
}

func (c *Composer) composeColumnar(input Input) *Question {
	var q *Question
	for attempt := 0; attempt < c.config.MaxAttempts; attempt++ {
		q = c.buildColumnar(input.Profile)
		if verr := runValidators(c.config.Validators, q, input); verr == nil {
			q.Validated = true
			return q
		}
	}
	c.log.Warn("columnar generation exhausted",
		"profile", input.Profile.Code,
		"attempts", c.config.MaxAttempts)
	return q
}

// buildArithmetic draws one or two chained steps.
func (c *Composer) buildArithmetic(p difficulty.Profile) (*Question, error) {
	steps := 1
	if len(p.Operations) > 1 && c.rng.IntN(100) < c.config.TwoStepPercent {
		steps = 2
	}

	operands := make([]int, 0, steps+1)
	ops := make([]string, 0, steps)
	var fixed *int
	for i := 0; i < steps; i++ {
		op := p.Operations[c.rng.IntN(len(p.Operations))]
		s, err := c.steps.Generate(p, op, fixed)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			operands = append(operands, s.A)
		}
		operands = append(operands, s.B)
		ops = append(ops, op.Symbol())
		result := s.Result
		fixed = &result
	}
	return c.newQuestion(p, KindArithmetic, operands, ops, *fixed), nil
}

// fallback samples a single step from a halved range. It skips every
// constraint check except staying within [0, MaxNumber].
func (c *Composer) fallback(p difficulty.Profile) *Question {
	op := p.Operations[c.rng.IntN(len(p.Operations))]
	half := p.MaxNumber / 2
	var a, b int
	if op == difficulty.Subtraction {
		a = between(c.rng, half, p.MaxNumber)
		b = between(c.rng, 0, half)
	} else {
		a = between(c.rng, 0, half)
		b = between(c.rng, 0, half)
	}
	return c.newQuestion(p, KindArithmetic, []int{a, b}, []string{op.Symbol()}, op.Apply(a, b))
}

// buildColumnar draws two operands, then hides one or two digits.
func (c *Composer) buildColumnar(p difficulty.Profile) *Question {
	var allowed []difficulty.Operation
	for _, op := range p.Operations {
		if op == difficulty.Addition || op == difficulty.Subtraction {
			allowed = append(allowed, op)
		}
	}
	op := allowed[c.rng.IntN(len(allowed))]

	max := p.MaxNumber
	a := between(c.rng, 0, max)
	b := between(c.rng, 0, max)
	if op == difficulty.Subtraction {
		if a < b {
			a, b = b, a
		}
	} else if a+b > max {
		b = between(c.rng, 0, max-a)
	}
	result := op.Apply(a, b)

	values := [3]int{a, b, result}
	width := 0
	for _, v := range values {
		if n := len(strconv.Itoa(v)); n > width {
			width = n
		}
	}
	full := [3]DigitRow{Digits(a, width), Digits(b, width), Digits(result, width)}
	blanked := selectBlanks(c.rng, full, values, width)

	layout := &ColumnarLayout{
		Operation: op.Symbol(),
		Width:     width,
		Operands:  [2]DigitRow{blanked[0], blanked[1]},
		Result:    blanked[2],
	}
	q := c.newQuestion(p, KindColumnar, []int{a, b}, []string{op.Symbol()}, result)
	q.Columnar = layout
	q.Display = layout.Template()
	return q
}

func (c *Composer) newQuestion(p difficulty.Profile, kind Kind, operands []int, ops []string, answer int) *Question {
	return &Question{
		ID:            uuid.NewString(),
		ProfileID:     p.ID,
		Kind:          kind,
		Operands:      operands,
		Operations:    ops,
		Display:       FormatExpression(operands, ops),
		CorrectAnswer: answer,
		CreatedAt:     c.now(),
	}
}

// FormatExpression renders operands and operators as "a + b - c".
func FormatExpression(operands []int, ops []string) string {
	var b strings.Builder
	for i, n := range operands {
		if i > 0 {
			fmt.Fprintf(&b, " %s ", ops[i-1])
		}
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
