package diagnosis

import "github.com/abhisek/mathdrill/internal/problemgen"

// Classifier is a rule-based error classifier.
// Returns a category and confidence (0.0–1.0), or ("", 0) if the rule doesn't apply.
type Classifier interface {
	Name() string
	Classify(input *ClassifyInput) (Category, float64)
}

// DefaultClassifiers returns classifiers in priority order. Rules that
// recognise the digits of the wrong answer come before the behavioural
// ones.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		&MissedCarryClassifier{},
		&MissedBorrowClassifier{},
		&WrongOperationClassifier{},
		&OffByOneClassifier{},
		&SpeedRushClassifier{},
		&CarelessClassifier{},
	}
}

// RunClassifiers executes rule-based classifiers in order.
// Returns the first match, or ("", 0, "") if no rules apply.
func RunClassifiers(classifiers []Classifier, input *ClassifyInput) (Category, float64, string) {
	for _, c := range classifiers {
		cat, conf := c.Classify(input)
		if cat != "" {
			return cat, conf, c.Name()
		}
	}
	return "", 0, ""
}

// Diagnose classifies the learner's response to q. It returns nil when q is
// unanswered or answered correctly.
func Diagnose(classifiers []Classifier, q *problemgen.Question, accuracy float64) *Result {
	if q == nil || q.Response == nil || q.Response.IsCorrect {
		return nil
	}
	cat, conf, name := RunClassifiers(classifiers, NewInput(q, accuracy))
	if cat == "" {
		return &Result{Category: CategoryUnclassified, Classifier: "none"}
	}
	return &Result{Category: cat, Confidence: conf, Classifier: name}
}

// singleStep returns the operands of a one-operation problem using op.
func singleStep(in *ClassifyInput, op string) (int, int, bool) {
	if len(in.Operands) != 2 || len(in.Operations) != 1 || in.Operations[0] != op {
		return 0, 0, false
	}
	return in.Operands[0], in.Operands[1], true
}
