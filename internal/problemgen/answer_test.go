package problemgen

import (
	"errors"
	"testing"
	"time"
)

func columnarQuestion() *Question {
	return &Question{
		ID:            "q-23-15",
		Kind:          KindColumnar,
		Operands:      []int{23, 15},
		Operations:    []string{"+"},
		CorrectAnswer: 38,
		Columnar: &ColumnarLayout{
			Operation: "+",
			Width:     2,
			Operands:  [2]DigitRow{{2, Blank}, {1, 5}},
			Result:    DigitRow{3, 8},
		},
	}
}

func TestCheckColumnar(t *testing.T) {
	tests := []struct {
		name string
		sub  ColumnarSubmission
		want bool
	}{
		{
			name: "original digits",
			sub:  ColumnarSubmission{Operands: [2]DigitRow{{2, 3}, {1, 5}}, Result: DigitRow{3, 8}},
			want: true,
		},
		{
			name: "inconsistent completion",
			sub:  ColumnarSubmission{Operands: [2]DigitRow{{2, 4}, {1, 5}}, Result: DigitRow{3, 8}},
			want: false,
		},
		{
			name: "consistent but changes a shown digit",
			sub:  ColumnarSubmission{Operands: [2]DigitRow{{2, 4}, {1, 4}}, Result: DigitRow{3, 8}},
			want: false,
		},
		{
			name: "blank left empty",
			sub:  ColumnarSubmission{Operands: [2]DigitRow{{2, Blank}, {1, 5}}, Result: DigitRow{3, 8}},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckColumnar(columnarQuestion(), tt.sub)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckColumnar_AcceptsAnyConsistentCompletion(t *testing.T) {
	q := columnarQuestion()
	q.Columnar.Operands = [2]DigitRow{{2, Blank}, {1, Blank}}
	sub := ColumnarSubmission{Operands: [2]DigitRow{{2, 1}, {1, 7}}, Result: DigitRow{3, 8}}
	ok, err := CheckColumnar(q, sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("21 + 17 = 38 should be accepted")
	}
}

func TestCheckColumnar_WidthMismatch(t *testing.T) {
	sub := ColumnarSubmission{Operands: [2]DigitRow{{2, 3}, {1, 5}}, Result: DigitRow{8}}
	_, err := CheckColumnar(columnarQuestion(), sub)
	if !errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
}

func TestCheckColumnar_NotColumnar(t *testing.T) {
	q := &Question{ID: "plain", Kind: KindArithmetic}
	_, err := CheckColumnar(q, ColumnarSubmission{})
	if !errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
}

func TestAnswer_RecordsOnce(t *testing.T) {
	q := &Question{ID: "q1", Kind: KindArithmetic, Operands: []int{8, 1}, Operations: []string{"+"}, CorrectAnswer: 9}
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	nine := 9
	correct, err := Answer(q, Submission{Answer: &nine, TimeSpent: 4.5}, at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !correct {
		t.Fatal("expected correct")
	}
	if q.Response == nil || q.Response.UserAnswer != 9 || !q.Response.AnsweredAt.Equal(at) || q.Response.TimeSpent != 4.5 {
		t.Fatalf("unexpected response: %+v", q.Response)
	}

	eight := 8
	_, err = Answer(q, Submission{Answer: &eight}, at.Add(time.Minute))
	if !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}
	if q.Response.UserAnswer != 9 || !q.Response.IsCorrect {
		t.Errorf("second answer must not overwrite the first: %+v", q.Response)
	}
}

func TestAnswer_ColumnarRecordsResultRow(t *testing.T) {
	q := columnarQuestion()
	sub := ColumnarSubmission{Operands: [2]DigitRow{{2, 3}, {1, 5}}, Result: DigitRow{3, 8}}
	correct, err := Answer(q, Submission{Columnar: &sub}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !correct || q.Response.UserAnswer != 38 || q.Response.Columnar == nil {
		t.Errorf("unexpected response: %+v", q.Response)
	}
}

func TestAnswer_MissingPayload(t *testing.T) {
	q := &Question{ID: "q1", Kind: KindArithmetic, CorrectAnswer: 3}
	if _, err := Answer(q, Submission{}, time.Now()); !errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
	if q.Answered() {
		t.Error("invalid submission must not record a response")
	}

	cq := columnarQuestion()
	one := 38
	if _, err := Answer(cq, Submission{Answer: &one}, time.Now()); !errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
}

func TestQuestion_CloneIsDeep(t *testing.T) {
	q := columnarQuestion()
	c := q.Clone()
	c.Operands[0] = 99
	c.Columnar.Result[0] = 0
	if q.Operands[0] != 23 || q.Columnar.Result[0] != 3 {
		t.Error("clone shares memory with original")
	}
}
