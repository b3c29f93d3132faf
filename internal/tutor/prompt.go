package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

const helpSystemPrompt = `You are a patient, encouraging math tutor for children in the first years of primary school. Explain one addition or subtraction question in plain words a child can follow.`

const narrationSystemPrompt = `You are a gentle primary school math teacher helping a child out loud. Your words will be read aloud by a speech synthesizer, so speak naturally and never use formatting, lists or symbols that cannot be spoken.`

func operationName(symbol string) string {
	switch symbol {
	case "+":
		return "addition"
	case "-":
		return "subtraction"
	}
	return "calculation"
}

func operationNames(q *problemgen.Question) string {
	seen := map[string]bool{}
	var names []string
	for _, op := range q.Operations {
		if n := operationName(op); !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return "calculation"
	}
	return strings.Join(names, " and ")
}

func columnarRows(q *problemgen.Question) string {
	l := q.Columnar
	var b strings.Builder
	fmt.Fprintf(&b, "  %s\n", l.Operands[0])
	fmt.Fprintf(&b, "%s %s\n", l.Operation, l.Operands[1])
	fmt.Fprintf(&b, "  %s\n", strings.Repeat("-", l.Width))
	fmt.Fprintf(&b, "  %s\n", l.Result)
	return b.String()
}

func buildHelpMessage(q *problemgen.Question) string {
	var b strings.Builder
	if q.Kind == problemgen.KindColumnar {
		fmt.Fprintf(&b, "Vertical %s question (? marks a missing digit):\n\n", operationName(q.Columnar.Operation))
		b.WriteString(columnarRows(q))
		b.WriteString(`
Instructions:
1. Say what kind of vertical calculation this is.
2. Explain how to line the digits up and work from the ones column to the left.
3. If a column needs a carry or a borrow, point it out.
4. Give the steps that find each missing digit, one sentence each.
5. Do not reveal the whole answer in the analysis.`)
		return b.String()
	}

	fmt.Fprintf(&b, "Question: %s = ?\n", q.Display)
	fmt.Fprintf(&b, "Operation: %s\n", operationNames(q))
	b.WriteString(`
Instructions:
1. Say what kind of question this is in 1-2 sentences.
2. Explain the thinking in 2-3 short sentences. Avoid math jargon.
3. List the steps, one sentence each, showing every calculation from left to right.`)
	return b.String()
}

func buildNarrationMessage(q *problemgen.Question) string {
	var b strings.Builder
	if q.Kind == problemgen.KindColumnar {
		l := q.Columnar
		fmt.Fprintf(&b, "Vertical %s. The first number is %s and the second number is %s, where _ is a missing digit.\n",
			operationName(l.Operation), underscored(l.Operands[0]), underscored(l.Operands[1]))
		fmt.Fprintf(&b, "The result row is %s.\n", underscored(l.Result))
		b.WriteString(`
Explain out loud how to work column by column from right to left. Remind the child to carry when adding and to borrow when subtracting. Encourage them to be careful and patient.`)
		return b.String()
	}

	fmt.Fprintf(&b, "Question: %s = ?\n", q.Display)
	fmt.Fprintf(&b, "Correct answer: %d\n", q.CorrectAnswer)
	fmt.Fprintf(&b, "Operation: %s\n", operationNames(q))
	b.WriteString(`
Talk the child through the calculation step by step in a warm voice. Use a small everyday example if it helps. End with the answer and a word of encouragement.`)
	return b.String()
}

func underscored(r problemgen.DigitRow) string {
	return strings.ReplaceAll(r.String(), "?", "_")
}
