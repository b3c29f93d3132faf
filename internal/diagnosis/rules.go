package diagnosis

import "github.com/abhisek/mathdrill/internal/problemgen"

// WrongOperationClassifier matches an answer obtained by flipping exactly
// one operator, e.g. answering 12 - 5 with 17.
type WrongOperationClassifier struct{}

func (c *WrongOperationClassifier) Name() string { return "wrong-operation" }

func (c *WrongOperationClassifier) Classify(input *ClassifyInput) (Category, float64) {
	for i := range input.Operations {
		ops := append([]string(nil), input.Operations...)
		ops[i] = flip(ops[i])
		got, err := problemgen.Evaluate(input.Operands, ops)
		if err == nil && got != input.Correct && got == input.Answer {
			return CategoryWrongOperation, 0.85
		}
	}
	return "", 0
}

func flip(op string) string {
	if op == "+" {
		return "-"
	}
	return "+"
}

// OffByOneClassifier matches answers one away from the correct result.
type OffByOneClassifier struct{}

func (c *OffByOneClassifier) Name() string { return "off-by-one" }

func (c *OffByOneClassifier) Classify(input *ClassifyInput) (Category, float64) {
	if d := input.Answer - input.Correct; d == 1 || d == -1 {
		return CategoryOffByOne, 0.7
	}
	return "", 0
}

// SpeedRushThreshold is the maximum response time in seconds (exclusive)
// for a wrong answer to be classified as a speed-rush.
const SpeedRushThreshold = 2.0

// SpeedRushClassifier flags answers submitted too quickly as speed-rush
// errors. A zero time means the client did not report one.
type SpeedRushClassifier struct{}

func (c *SpeedRushClassifier) Name() string { return "speed-rush" }

func (c *SpeedRushClassifier) Classify(input *ClassifyInput) (Category, float64) {
	if input.TimeSpent > 0 && input.TimeSpent < SpeedRushThreshold {
		return CategorySpeedRush, 0.9
	}
	return "", 0
}

// CarelessAccuracyThreshold is the minimum session accuracy (exclusive)
// for a wrong answer to be classified as a careless error.
const CarelessAccuracyThreshold = 0.80

// CarelessClassifier flags wrong answers from high-accuracy learners as
// careless slips rather than knowledge gaps.
type CarelessClassifier struct{}

func (c *CarelessClassifier) Name() string { return "careless" }

func (c *CarelessClassifier) Classify(input *ClassifyInput) (Category, float64) {
	if input.Accuracy > CarelessAccuracyThreshold {
		return CategoryCareless, 0.8
	}
	return "", 0
}
