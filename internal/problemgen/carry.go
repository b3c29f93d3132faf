package problemgen

// HasCarry reports whether a + b produces a carry in any of the lowest
// columns digit columns.
func HasCarry(a, b, columns int) bool {
	for i := 0; i < columns; i++ {
		if a%10+b%10 >= 10 {
			return true
		}
		a /= 10
		b /= 10
	}
	return false
}

// HasBorrow reports whether a - b needs a borrow in any of the lowest
// columns digit columns.
func HasBorrow(a, b, columns int) bool {
	for i := 0; i < columns; i++ {
		if a%10 < b%10 {
			return true
		}
		a /= 10
		b /= 10
	}
	return false
}

// Evaluate folds operands left to right with the given operator symbols.
func Evaluate(operands []int, ops []string) (int, error) {
	if len(operands) == 0 || len(ops) != len(operands)-1 {
		return 0, ErrInvalidSubmission
	}
	result := operands[0]
	for i, s := range ops {
		switch s {
		case "+":
			result += operands[i+1]
		case "-":
			result -= operands[i+1]
		default:
			return 0, ErrInvalidSubmission
		}
	}
	return result, nil
}

// recentWindow keeps only the most recent max entries.
func recentWindow(recent []string, max int) []string {
	if max > 0 && len(recent) > max {
		return recent[len(recent)-max:]
	}
	return recent
}
