package problemgen

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/abhisek/mathdrill/internal/difficulty"
)

// RangeValidator checks that every operand, intermediate result and the
// final answer lie in [0, MaxNumber].
type RangeValidator struct{}

func (v *RangeValidator) Name() string { return "range" }

func (v *RangeValidator) Validate(q *Question, input Input) *ValidationError {
	max := input.Profile.MaxNumber
	for _, n := range q.Operands {
		if n < 0 || n > max {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("operand %d outside [0, %d]", n, max),
				Retryable: true,
			}
		}
	}
	if len(q.Operands) == 0 || len(q.Operations) != len(q.Operands)-1 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "operands and operations do not line up",
			Retryable: true,
		}
	}
	running := q.Operands[0]
	for i, s := range q.Operations {
		op, err := difficulty.OperationFromSymbol(s)
		if err != nil {
			return &ValidationError{Validator: v.Name(), Message: err.Error()}
		}
		running = op.Apply(running, q.Operands[i+1])
		if running < 0 || running > max {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("result %d after step %d outside [0, %d]", running, i+1, max),
				Retryable: true,
			}
		}
	}
	return nil
}

// CarryBorrowValidator rejects arithmetic questions with a carry or borrow
// in an exercised column when the profile forbids it. Columnar questions
// draw their operands freely and are not checked.
type CarryBorrowValidator struct{}

func (v *CarryBorrowValidator) Name() string { return "carry-borrow" }

func (v *CarryBorrowValidator) Validate(q *Question, input Input) *ValidationError {
	if q.Kind == KindColumnar || len(q.Operands) == 0 {
		return nil
	}
	p := input.Profile
	columns := p.Shape().Columns()
	running := q.Operands[0]
	for i, s := range q.Operations {
		b := q.Operands[i+1]
		switch s {
		case "+":
			if !p.AllowCarry && HasCarry(running, b, columns) {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("%d + %d needs a carry", running, b),
					Retryable: true,
				}
			}
			running += b
		case "-":
			if !p.AllowBorrow && HasBorrow(running, b, columns) {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("%d - %d needs a borrow", running, b),
					Retryable: true,
				}
			}
			running -= b
		}
	}
	return nil
}

// ExpressionValidator independently recomputes the answer from the display
// string (arithmetic) or the layout (columnar) and compares it with the
// stored answer.
type ExpressionValidator struct{}

func (v *ExpressionValidator) Name() string { return "expression" }

var expressionRe = regexp.MustCompile(`^(\d+)((?: [+-] \d+)+)$`)
var expressionTermRe = regexp.MustCompile(` ([+-]) (\d+)`)

func (v *ExpressionValidator) Validate(q *Question, _ Input) *ValidationError {
	var computed int
	switch q.Kind {
	case KindColumnar:
		if q.Columnar == nil {
			return &ValidationError{Validator: v.Name(), Message: "columnar question without layout"}
		}
		if q.Display != q.Columnar.Template() {
			return &ValidationError{Validator: v.Name(), Message: "display does not match layout"}
		}
		n, err := Evaluate(q.Operands, q.Operations)
		if err != nil {
			return &ValidationError{Validator: v.Name(), Message: err.Error()}
		}
		computed = n
	default:
		n, err := parseExpression(q.Display)
		if err != nil {
			return &ValidationError{Validator: v.Name(), Message: err.Error()}
		}
		computed = n
	}
	if computed != q.CorrectAnswer {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %d but stored answer is %d", computed, q.CorrectAnswer),
		}
	}
	return nil
}

// parseExpression evaluates a display string such as "12 + 5 - 3".
func parseExpression(s string) (int, error) {
	m := expressionRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("unparseable expression %q", s)
	}
	result, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, err
	}
	for _, term := range expressionTermRe.FindAllStringSubmatch(m[2], -1) {
		n, err := strconv.Atoi(term[2])
		if err != nil {
			return 0, err
		}
		if term[1] == "+" {
			result += n
		} else {
			result -= n
		}
	}
	return result, nil
}

// RepetitionValidator rejects a question whose display string matches one
// of the recent questions.
type RepetitionValidator struct{}

func (v *RepetitionValidator) Name() string { return "repetition" }

func (v *RepetitionValidator) Validate(q *Question, input Input) *ValidationError {
	for _, prior := range input.Recent {
		if prior == q.Display {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("%q repeats a recent question", q.Display),
				Retryable: true,
			}
		}
	}
	return nil
}
