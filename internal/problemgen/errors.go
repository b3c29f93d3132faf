package problemgen

import (
	"errors"

	"github.com/abhisek/mathdrill/internal/difficulty"
)

var (
	// ErrConfiguration is returned when a profile can never yield a question.
	ErrConfiguration = difficulty.ErrConfiguration

	// ErrStepExhausted is returned when no valid step was found within the
	// attempt budget.
	ErrStepExhausted = errors.New("no valid step within attempt budget")

	// ErrAlreadyAnswered is returned when a response is recorded twice.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrInvalidSubmission is returned when a submission does not match the
	// shape of the question it answers.
	ErrInvalidSubmission = errors.New("invalid submission")
)
