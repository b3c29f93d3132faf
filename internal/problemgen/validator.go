package problemgen

import "fmt"

// Validator checks a composed question against a profile's constraints.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error messages
	// and logging), e.g. "range", "carry-borrow", "repetition".
	Name() string

	// Validate checks the question and returns nil if it passes.
	Validate(q *Question, input Input) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// runValidators runs the chain in order and returns the first failure.
func runValidators(validators []Validator, q *Question, input Input) *ValidationError {
	for _, v := range validators {
		if verr := v.Validate(q, input); verr != nil {
			return verr
		}
	}
	return nil
}
