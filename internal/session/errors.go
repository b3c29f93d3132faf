package session

import "errors"

var (
	// ErrNotFound is returned when a session id is unknown.
	ErrNotFound = errors.New("session not found")

	// ErrQuestionNotFound is returned when a question id is not part of the
	// session.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrAlreadyAnswered is returned when a question is answered twice.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrSessionEnded is returned when a session accepts no more questions
	// or answers.
	ErrSessionEnded = errors.New("session has ended")

	// ErrInvalidPlan is returned for an out-of-range question count.
	ErrInvalidPlan = errors.New("invalid number of questions")
)
