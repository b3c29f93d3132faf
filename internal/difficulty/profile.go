package difficulty

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no profile matches a lookup.
	ErrNotFound = errors.New("difficulty level not found")

	// ErrConfiguration marks a profile that can never produce a question.
	ErrConfiguration = errors.New("invalid difficulty configuration")
)

// Operation is an arithmetic operation a profile may allow.
type Operation string

const (
	Addition    Operation = "addition"
	Subtraction Operation = "subtraction"
)

// Symbol returns the operator as displayed in a question ("+" or "-").
func (o Operation) Symbol() string {
	switch o {
	case Addition:
		return "+"
	case Subtraction:
		return "-"
	default:
		return string(o)
	}
}

// Apply evaluates a <op> b.
func (o Operation) Apply(a, b int) int {
	if o == Subtraction {
		return a - b
	}
	return a + b
}

// OperationFromSymbol parses "+" or "-".
func OperationFromSymbol(s string) (Operation, error) {
	switch s {
	case "+":
		return Addition, nil
	case "-":
		return Subtraction, nil
	default:
		return "", fmt.Errorf("unsupported operation symbol %q", s)
	}
}

// Shape selects how operands are drawn for a profile.
type Shape int

const (
	ShapeGeneric    Shape = iota // Both operands in [0, MaxNumber]
	ShapeTens                    // Both operands are multiples of ten
	ShapeTwoPlusOne              // Two-digit first operand, one-digit second
)

func (s Shape) String() string {
	switch s {
	case ShapeTens:
		return "tens"
	case ShapeTwoPlusOne:
		return "two-plus-one"
	default:
		return "generic"
	}
}

// Columns returns how many digit columns (from the units up) the shape
// exercises when checking for carry or borrow.
func (s Shape) Columns() int {
	if s == ShapeTwoPlusOne {
		return 1
	}
	return 2
}

// Profile is a named difficulty level. Profiles are immutable after load.
type Profile struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Code        string      `json:"code"`
	MaxNumber   int         `json:"max_number"`
	AllowCarry  bool        `json:"allow_carry"`
	AllowBorrow bool        `json:"allow_borrow"`
	Operations  []Operation `json:"operation_types"`
	Order       int         `json:"order"`
}

// Shape derives the operand shape policy from the profile code.
func (p Profile) Shape() Shape {
	switch {
	case p.Code == "within_100_tens":
		return ShapeTens
	case strings.Contains(p.Code, "within_100_two_one"):
		return ShapeTwoPlusOne
	default:
		return ShapeGeneric
	}
}

// Allows reports whether op is one of the profile's operations.
func (p Profile) Allows(op Operation) bool {
	for _, o := range p.Operations {
		if o == op {
			return true
		}
	}
	return false
}

// Validate returns an error wrapping ErrConfiguration when the profile
// cannot be used for generation.
func (p Profile) Validate() error {
	if p.MaxNumber <= 0 {
		return fmt.Errorf("%w: profile %q has max number %d", ErrConfiguration, p.Code, p.MaxNumber)
	}
	if len(p.Operations) == 0 {
		return fmt.Errorf("%w: profile %q has no operation types", ErrConfiguration, p.Code)
	}
	for _, op := range p.Operations {
		if op != Addition && op != Subtraction {
			return fmt.Errorf("%w: profile %q has unknown operation %q", ErrConfiguration, p.Code, op)
		}
	}
	return nil
}
