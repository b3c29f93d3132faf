package problemgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Digit is a single column digit, or Blank for a hidden position.
type Digit int8

// Blank marks a digit the learner has to fill in. It encodes as JSON null.
const Blank Digit = -1

// Valid reports whether d is Blank or in 0..9.
func (d Digit) Valid() bool {
	return d == Blank || (d >= 0 && d <= 9)
}

func (d Digit) MarshalJSON() ([]byte, error) {
	if d == Blank {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(d))), nil
}

func (d *Digit) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Blank
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if n < 0 || n > 9 {
		return fmt.Errorf("%w: digit %d out of range", ErrInvalidSubmission, n)
	}
	*d = Digit(n)
	return nil
}

// DigitRow is a number split into columns, most significant first.
type DigitRow []Digit

// Digits splits n into exactly width digits, left-padding with zeros.
func Digits(n, width int) DigitRow {
	s := strconv.Itoa(n)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	row := make(DigitRow, len(s))
	for i, c := range s {
		row[i] = Digit(c - '0')
	}
	return row
}

// Value reads the row as a number, treating blanks as 0.
func (r DigitRow) Value() int {
	n := 0
	for _, d := range r {
		if d == Blank {
			d = 0
		}
		n = n*10 + int(d)
	}
	return n
}

// String renders the row with "?" for blanks.
func (r DigitRow) String() string {
	var b strings.Builder
	for _, d := range r {
		if d == Blank {
			b.WriteByte('?')
			continue
		}
		b.WriteByte(byte('0' + d))
	}
	return b.String()
}

// Filled returns a copy of r with every blank replaced by the digit at the
// same position in full.
func (r DigitRow) Filled(full DigitRow) DigitRow {
	out := make(DigitRow, len(r))
	for i, d := range r {
		if d == Blank && i < len(full) {
			d = full[i]
		}
		out[i] = d
	}
	return out
}

// Blanks counts hidden positions.
func (r DigitRow) Blanks() int {
	n := 0
	for _, d := range r {
		if d == Blank {
			n++
		}
	}
	return n
}

func (r DigitRow) clone() DigitRow {
	return append(DigitRow(nil), r...)
}

// ColumnarLayout is the vertical form of a two-operand question with some
// digits hidden.
type ColumnarLayout struct {
	Operation string      `json:"operation"`
	Width     int         `json:"width"`
	Operands  [2]DigitRow `json:"operands"`
	Result    DigitRow    `json:"result"`
}

// Rows returns the operand rows followed by the result row.
func (l ColumnarLayout) Rows() [3]DigitRow {
	return [3]DigitRow{l.Operands[0], l.Operands[1], l.Result}
}

// Template renders the layout on one line, e.g. "2? + 15 = 38".
func (l ColumnarLayout) Template() string {
	return fmt.Sprintf("%s %s %s = %s", l.Operands[0], l.Operation, l.Operands[1], l.Result)
}

func (l ColumnarLayout) clone() ColumnarLayout {
	l.Operands = [2]DigitRow{l.Operands[0].clone(), l.Operands[1].clone()}
	l.Result = l.Result.clone()
	return l
}

// ColumnarSubmission holds the learner's completed rows.
type ColumnarSubmission struct {
	Operands [2]DigitRow `json:"operands"`
	Result   DigitRow    `json:"result"`
}

// Rows returns the operand rows followed by the result row.
func (s ColumnarSubmission) Rows() [3]DigitRow {
	return [3]DigitRow{s.Operands[0], s.Operands[1], s.Result}
}

func (s ColumnarSubmission) clone() ColumnarSubmission {
	s.Operands = [2]DigitRow{s.Operands[0].clone(), s.Operands[1].clone()}
	s.Result = s.Result.clone()
	return s
}

// position addresses one digit: row 0 and 1 are operands, row 2 the result.
type position struct {
	row, col int
}

// selectBlanks hides one or two digits of rows and returns the blanked
// copies. Leading padding zeros are skipped when the layout is wider than
// one column. A blank never removes the last fixed digit of a row unless
// it is the only blank.
func selectBlanks(rng Rand, rows [3]DigitRow, values [3]int, width int) [3]DigitRow {
	var eligible []position
	for r, row := range rows {
		lead := width - len(strconv.Itoa(values[r]))
		for c := range row {
			if c < lead && width > 1 {
				continue
			}
			eligible = append(eligible, position{r, c})
		}
	}

	out := [3]DigitRow{rows[0].clone(), rows[1].clone(), rows[2].clone()}
	if len(eligible) == 0 {
		out[2][0] = Blank
		return out
	}

	want := 1 + rng.IntN(2)
	if want > len(eligible) {
		want = len(eligible)
	}

	// Partial Fisher-Yates over the eligible positions.
	placed := 0
	for i := 0; i < len(eligible) && placed < want; i++ {
		j := i + rng.IntN(len(eligible)-i)
		eligible[i], eligible[j] = eligible[j], eligible[i]
		p := eligible[i]
		if placed > 0 && out[p.row].Blanks() == len(out[p.row])-1 {
			continue
		}
		out[p.row][p.col] = Blank
		placed++
	}
	return out
}
