// Package render draws questions for the terminal.
package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// ColumnarLines lays out a columnar question as right-aligned rows:
// first operand, operator and second operand, a rule, then the result.
// Blanks are drawn as "?".
func ColumnarLines(l *problemgen.ColumnarLayout) []string {
	w := l.Width
	return []string{
		fmt.Sprintf("  %*s", w, l.Operands[0]),
		fmt.Sprintf("%s %*s", l.Operation, w, l.Operands[1]),
		"  " + strings.Repeat("─", w),
		fmt.Sprintf("  %*s", w, l.Result),
	}
}

// Question renders q as a styled card. Fallback questions are flagged.
func Question(n int, q *problemgen.Question) string {
	var body string
	if q.Kind == problemgen.KindColumnar && q.Columnar != nil {
		lines := ColumnarLines(q.Columnar)
		for i, line := range lines {
			if i == 2 {
				lines[i] = theme.Rule.Render(line)
				continue
			}
			lines[i] = styleDigits(line)
		}
		body = strings.Join(lines, "\n")
	} else {
		body = theme.Digit.Render(q.Display + " = ?")
	}

	status := theme.Validated.Render("validated")
	if !q.Validated {
		status = theme.Fallback.Render("fallback")
	}
	header := fmt.Sprintf("%s  %s  %s",
		theme.Title.Render(fmt.Sprintf("#%d", n)),
		theme.Hint.Render(string(q.Kind)),
		status)

	return lipgloss.JoinVertical(lipgloss.Left, header, theme.Card.Render(body))
}

// Answer renders the solution line shown under a question.
func Answer(q *problemgen.Question) string {
	if q.Kind == problemgen.KindColumnar && len(q.Operands) == 2 {
		return theme.Hint.Render(fmt.Sprintf("answer: %s = %d", problemgen.FormatExpression(q.Operands, q.Operations), q.CorrectAnswer))
	}
	return theme.Hint.Render(fmt.Sprintf("answer: %d", q.CorrectAnswer))
}

func styleDigits(line string) string {
	var b strings.Builder
	for _, r := range line {
		switch {
		case r == '?':
			b.WriteString(theme.BlankDigit.Render("?"))
		case r >= '0' && r <= '9':
			b.WriteString(theme.Digit.Render(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
