package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

func scriptedHelp(q *problemgen.Question) Help {
	if q.Kind == problemgen.KindColumnar {
		name := operationName(q.Columnar.Operation)
		return Help{
			Analysis: fmt.Sprintf("This is a vertical %s question. Let's work out the missing digits together!", name),
			Thinking: fmt.Sprintf("In vertical %s we go from right to left, one column at a time.", name),
			Steps: []string{
				"Line the numbers up so the ones and tens sit in the same columns.",
				"Start with the ones column and work one column at a time.",
				"Watch out for a carry or a borrow.",
				"Check that every row fits together.",
			},
			Fallback: true,
		}
	}
	return Help{
		Analysis: fmt.Sprintf("This question asks for %s. Let's think it through!", q.Display),
		Thinking: "We work from left to right, one operation at a time.",
		Steps: []string{
			"Find out which operation comes first.",
			"Calculate each part in order.",
			"Write down the answer.",
		},
		Fallback: true,
	}
}

func scriptedNarration(q *problemgen.Question) string {
	if q.Kind == problemgen.KindColumnar {
		op := q.Columnar.Operation
		text := fmt.Sprintf("This is a vertical %s question. ", operationName(op)) +
			"Remember the big rule: go from right to left, one column at a time. " +
			"First line up the ones and the tens, then start with the ones column. "
		switch op {
		case "+":
			text += "If a column adds up to more than nine, carry one to the next column. "
		case "-":
			text += "If the top digit is too small, borrow one ten from the next column. "
		}
		return text + "Take your time, you can do it!"
	}

	if len(q.Operands) < 2 || len(q.Operations) == 0 {
		return "This is a math question. Look carefully at the numbers and work it out one step at a time. You can do it!"
	}
	return fmt.Sprintf("This is a %s question. The question is %s. ", operationName(q.Operations[0]), spoken(q.Display)) +
		fmt.Sprintf("Let's start with %d %s %d. ", q.Operands[0], spokenOp(q.Operations[0]), q.Operands[1]) +
		"Take your time and check your answer when you are done. I know you can get it right!"
}

func spokenOp(symbol string) string {
	if symbol == "-" {
		return "minus"
	}
	return "plus"
}

var spokenOps = strings.NewReplacer("+", "plus", "-", "minus")

func spoken(display string) string {
	return spokenOps.Replace(display)
}
