package problemgen

import (
	"time"

	"github.com/abhisek/mathdrill/internal/difficulty"
)

// Kind distinguishes plain arithmetic questions from columnar fill-in
// questions.
type Kind string

const (
	KindArithmetic Kind = "arithmetic"
	KindColumnar   Kind = "columnar"
)

// Question represents a generated question ready for display.
type Question struct {
	ID        string `json:"id"`
	ProfileID int    `json:"difficulty_level_id"`
	Kind      Kind   `json:"question_type"`

	// Operands holds 2 or 3 integers folded left to right with Operations.
	Operands []int `json:"operands"`

	// Operations holds operator symbols ("+" or "-"), len(Operands)-1 of them.
	Operations []string `json:"operations"`

	// Display is the rendered question, e.g. "12 + 5 - 3" or, for columnar
	// questions, the blanked template "2? + 15 = 38".
	Display string `json:"question_string"`

	CorrectAnswer int `json:"correct_answer"`

	// Columnar is populated only for KindColumnar.
	Columnar *ColumnarLayout `json:"columnar,omitempty"`

	// Validated is false when the composer ran out of attempts and fell back
	// to a reduced-range question that skipped the constraint checks.
	Validated bool `json:"validated"`

	CreatedAt time.Time `json:"created_at"`

	// Response is set once, when the learner answers.
	Response *Response `json:"response,omitempty"`
}

// Response records the learner's answer to a question.
type Response struct {
	UserAnswer int                 `json:"user_answer"`
	Columnar   *ColumnarSubmission `json:"columnar,omitempty"`
	IsCorrect  bool                `json:"is_correct"`
	AnsweredAt time.Time           `json:"answered_at"`
	TimeSpent  float64             `json:"time_spent,omitempty"` // seconds
}

// Answered reports whether the learner has responded.
func (q *Question) Answered() bool {
	return q.Response != nil
}

// Respond records resp on the question. A question can only be answered once.
func (q *Question) Respond(resp Response) error {
	if q.Answered() {
		return ErrAlreadyAnswered
	}
	q.Response = &resp
	return nil
}

// Ops parses the operation symbols.
func (q *Question) Ops() ([]difficulty.Operation, error) {
	ops := make([]difficulty.Operation, len(q.Operations))
	for i, s := range q.Operations {
		op, err := difficulty.OperationFromSymbol(s)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	return ops, nil
}

// Clone returns a deep copy of q.
func (q *Question) Clone() *Question {
	c := *q
	c.Operands = append([]int(nil), q.Operands...)
	c.Operations = append([]string(nil), q.Operations...)
	if q.Columnar != nil {
		l := q.Columnar.clone()
		c.Columnar = &l
	}
	if q.Response != nil {
		r := *q.Response
		if r.Columnar != nil {
			s := r.Columnar.clone()
			r.Columnar = &s
		}
		c.Response = &r
	}
	return &c
}

// Submission is a learner's answer before it is checked. Arithmetic
// questions use Answer; columnar questions use Columnar.
type Submission struct {
	Answer    *int                `json:"user_answer,omitempty"`
	Columnar  *ColumnarSubmission `json:"columnar,omitempty"`
	TimeSpent float64             `json:"time_spent,omitempty"`
}

// Input carries the context the validator chain needs.
type Input struct {
	Profile difficulty.Profile

	// Recent holds display strings of prior questions in the session,
	// oldest first. Only the last Config.RecentWindow are considered.
	Recent []string
}
