package problemgen

import (
	"fmt"
	"time"

	"github.com/abhisek/mathdrill/internal/difficulty"
)

// CheckArithmetic reports whether answer is the correct result of q.
func CheckArithmetic(q *Question, answer int) bool {
	return answer == q.CorrectAnswer
}

// CheckColumnar checks a completed columnar layout. The submission is
// correct when the digits shown to the learner are unchanged and the
// claimed operands and result are internally consistent. Any consistent
// completion is accepted, not only the original operands.
func CheckColumnar(q *Question, sub ColumnarSubmission) (bool, error) {
	l := q.Columnar
	if l == nil {
		return false, fmt.Errorf("%w: question %s is not columnar", ErrInvalidSubmission, q.ID)
	}
	op, err := difficulty.OperationFromSymbol(l.Operation)
	if err != nil {
		return false, err
	}

	shown := l.Rows()
	got := sub.Rows()
	for r := range got {
		if len(got[r]) != l.Width {
			return false, fmt.Errorf("%w: row %d has %d digits, want %d", ErrInvalidSubmission, r, len(got[r]), l.Width)
		}
		for c, d := range got[r] {
			if !d.Valid() {
				return false, fmt.Errorf("%w: row %d column %d has digit %d", ErrInvalidSubmission, r, c, d)
			}
		}
	}
	for r := range got {
		for c, want := range shown[r] {
			if want != Blank && got[r][c] != want {
				return false, nil
			}
		}
	}
	return op.Apply(got[0].Value(), got[1].Value()) == got[2].Value(), nil
}

// Check evaluates sub against q without recording anything.
func Check(q *Question, sub Submission) (bool, error) {
	switch q.Kind {
	case KindColumnar:
		if sub.Columnar == nil {
			return false, fmt.Errorf("%w: columnar question needs a columnar answer", ErrInvalidSubmission)
		}
		return CheckColumnar(q, *sub.Columnar)
	default:
		if sub.Answer == nil {
			return false, fmt.Errorf("%w: missing answer", ErrInvalidSubmission)
		}
		return CheckArithmetic(q, *sub.Answer), nil
	}
}

// Answer checks sub and records the response on q. It returns
// ErrAlreadyAnswered, leaving q untouched, if q was answered before.
func Answer(q *Question, sub Submission, at time.Time) (bool, error) {
	if q.Answered() {
		return false, ErrAlreadyAnswered
	}
	correct, err := Check(q, sub)
	if err != nil {
		return false, err
	}
	resp := Response{
		IsCorrect:  correct,
		AnsweredAt: at,
		TimeSpent:  sub.TimeSpent,
	}
	if q.Kind == KindColumnar {
		c := sub.Columnar.clone()
		resp.Columnar = &c
		resp.UserAnswer = c.Result.Value()
	} else {
		resp.UserAnswer = *sub.Answer
	}
	if err := q.Respond(resp); err != nil {
		return false, err
	}
	return correct, nil
}
