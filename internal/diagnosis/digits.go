package diagnosis

import "github.com/abhisek/mathdrill/internal/problemgen"

// MissedCarryClassifier matches an addition whose answer is the column sums
// with every carry dropped, e.g. 27 + 15 = 32.
type MissedCarryClassifier struct{}

func (c *MissedCarryClassifier) Name() string { return "missed-carry" }

func (c *MissedCarryClassifier) Classify(input *ClassifyInput) (Category, float64) {
	a, b, ok := singleStep(input, "+")
	if !ok || !problemgen.HasCarry(a, b, columns(a, b)) {
		return "", 0
	}
	if input.Answer == sumWithoutCarry(a, b) {
		return CategoryMissedCarry, 0.9
	}
	return "", 0
}

// MissedBorrowClassifier matches a subtraction where each column took the
// smaller digit from the larger one instead of borrowing, e.g. 42 - 17 = 35.
type MissedBorrowClassifier struct{}

func (c *MissedBorrowClassifier) Name() string { return "missed-borrow" }

func (c *MissedBorrowClassifier) Classify(input *ClassifyInput) (Category, float64) {
	a, b, ok := singleStep(input, "-")
	if !ok || !problemgen.HasBorrow(a, b, columns(a, b)) {
		return "", 0
	}
	if input.Answer == smallerFromLarger(a, b) {
		return CategoryMissedBorrow, 0.9
	}
	return "", 0
}

func columns(a, b int) int {
	n := 1
	for m := max(a, b); m >= 10; m /= 10 {
		n++
	}
	return n
}

func sumWithoutCarry(a, b int) int {
	result, place := 0, 1
	for a > 0 || b > 0 {
		result += (a%10 + b%10) % 10 * place
		a /= 10
		b /= 10
		place *= 10
	}
	return result
}

func smallerFromLarger(a, b int) int {
	result, place := 0, 1
	for a > 0 || b > 0 {
		da, db := a%10, b%10
		if da < db {
			da, db = db, da
		}
		result += (da - db) * place
		a /= 10
		b /= 10
		place *= 10
	}
	return result
}
