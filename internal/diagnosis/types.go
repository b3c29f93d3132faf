package diagnosis

import "github.com/abhisek/mathdrill/internal/problemgen"

// Category classifies a wrong answer.
type Category string

const (
	CategoryMissedCarry    Category = "missed-carry"
	CategoryMissedBorrow   Category = "missed-borrow"
	CategoryWrongOperation Category = "wrong-operation"
	CategoryOffByOne       Category = "off-by-one"
	CategorySpeedRush      Category = "speed-rush"
	CategoryCareless       Category = "careless"
	CategoryUnclassified   Category = "unclassified"
)

// ClassifyInput holds the context for classification.
type ClassifyInput struct {
	// Operands and Operations describe the problem as the learner saw it.
	// For columnar questions the operands are the learner's completed rows.
	Operands   []int
	Operations []string

	Answer  int
	Correct int

	TimeSpent float64 // seconds, 0 when unknown
	Accuracy  float64 // Session accuracy before this answer (0.0–1.0)
}

// Result is the output of classifying a wrong answer.
type Result struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Classifier string   `json:"classifier"`
}

// NewInput builds the classification input for an answered question.
func NewInput(q *problemgen.Question, accuracy float64) *ClassifyInput {
	in := &ClassifyInput{
		Operands:   q.Operands,
		Operations: q.Operations,
		Correct:    q.CorrectAnswer,
		Accuracy:   accuracy,
	}
	if r := q.Response; r != nil {
		in.Answer = r.UserAnswer
		in.TimeSpent = r.TimeSpent
		if r.Columnar != nil {
			in.Operands = []int{r.Columnar.Operands[0].Value(), r.Columnar.Operands[1].Value()}
			in.Correct, _ = problemgen.Evaluate(in.Operands, in.Operations)
		}
	}
	return in
}
