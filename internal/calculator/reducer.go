// Package calculator implements the keypad calculator: the pure state reducer,
// its action vocabulary, and the HTTP surface that dispatches actions against
// per-session state.
package calculator

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Reducer maps (state, action) to the next state. The locale only affects
// how operands are written in history records and on the display.
type Reducer struct {
	tag      language.Tag
	groupSep string
	decSep   string
}

func NewReducer(tag language.Tag) *Reducer {
	p := message.NewPrinter(tag)
	return &Reducer{
		tag:      tag,
		groupSep: strings.TrimFunc(p.Sprintf("%v", number.Decimal(1000)), unicode.IsDigit),
		decSep:   strings.TrimFunc(p.Sprintf("%v", number.Decimal(1.5)), unicode.IsDigit),
	}
}

// DefaultLocale produces records such as "1,234 + 5 = 1239".
var DefaultLocale = language.AmericanEnglish

var defaultReducer = NewReducer(DefaultLocale)

// Reduce applies a to s with the en-US reducer.
func Reduce(s State, a Action) State {
	return defaultReducer.Reduce(s, a)
}

// FormatOperand formats an operand with en-US grouping.
func FormatOperand(operand string) string {
	return defaultReducer.FormatOperand(operand)
}

// Reduce returns the state that follows s after a. Actions that do not apply
// return s unchanged.
func (r *Reducer) Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddDigit:
		return addDigit(s, a.Digit)
	case ChooseOperation:
		return chooseOperation(s, a.Operation)
	case Clear:
		return State{History: s.History}
	case DeleteDigit:
		return deleteDigit(s)
	case Evaluate:
		return r.evaluate(s)
	}
	return s
}

func addDigit(s State, d Digit) State {
	if s.Overwrite {
		s.CurrentOperand = string(d)
		s.Overwrite = false
		return s
	}
	if d == "0" && s.CurrentOperand == "0" {
		return s
	}
	if d == DecimalPoint {
		if s.CurrentOperand == "" {
			s.CurrentOperand = "0."
			return s
		}
		if strings.Contains(s.CurrentOperand, ".") {
			return s
		}
	}

	s.CurrentOperand += string(d)
	return s
}

func chooseOperation(s State, op Operation) State {
	if s.CurrentOperand == "" && s.PreviousOperand == "" {
		return s
	}
	if s.PreviousOperand == "" {
		s.PreviousOperand = s.CurrentOperand
		s.CurrentOperand = ""
		s.Operation = op
		return s
	}
	if s.CurrentOperand == "" {
		s.Operation = op
		return s
	}

	result := Compute(s.PreviousOperand, s.Operation, s.CurrentOperand)
	if result == "" {
		return s
	}
	s.PreviousOperand = result
	s.CurrentOperand = ""
	s.Operation = op
	return s
}

func deleteDigit(s State) State {
	if s.Overwrite {
		s.Overwrite = false
		s.CurrentOperand = ""
		return s
	}
	if s.CurrentOperand == "" {
		return s
	}
	if utf8.RuneCountInString(s.CurrentOperand) == 1 {
		s.CurrentOperand = ""
		return s
	}

	_, size := utf8.DecodeLastRuneInString(s.CurrentOperand)
	s.CurrentOperand = s.CurrentOperand[:len(s.CurrentOperand)-size]
	return s
}

func (r *Reducer) evaluate(s State) State {
	if s.Operation == "" || s.PreviousOperand == "" || s.CurrentOperand == "" {
		return s
	}

	result := Compute(s.PreviousOperand, s.Operation, s.CurrentOperand)
	if result == "" {
		return s
	}

	return State{
		CurrentOperand: result,
		Overwrite:      true,
		History:        withRecord(s.History, r.Record(s.PreviousOperand, s.Operation, s.CurrentOperand, result)),
	}
}

// Record formats a history entry: "<left> <op> <right> = <result>".
func (r *Reducer) Record(previous string, op Operation, current, result string) string {
	return fmt.Sprintf("%s %s %s = %s", r.FormatOperand(previous), op, r.FormatOperand(current), result)
}

// Screen projects s onto the display.
func (r *Reducer) Screen(s State) Screen {
	return Screen{
		Previous:  r.FormatOperand(s.PreviousOperand),
		Operation: s.Operation,
		Current:   r.FormatOperand(s.CurrentOperand),
	}
}

// FormatOperand groups the integer part of operand with the locale's
// separators and reattaches the fractional digits after the locale's decimal
// separator.
func (r *Reducer) FormatOperand(operand string) string {
	if operand == "" {
		return ""
	}

	integer, decimal, hasDecimal := strings.Cut(operand, ".")
	formatted := r.formatInteger(integer)
	if !hasDecimal {
		return formatted
	}
	return formatted + r.decSep + decimal
}

// exactDigits is the longest digit run a float64 always holds exactly.
const exactDigits = 15

func (r *Reducer) formatInteger(s string) string {
	if sign, digits, ok := splitDigits(s); ok && len(digits) > exactDigits {
		return sign + groupThousands(digits, r.groupSep)
	}

	v, ok := parseNumber(s)
	switch {
	case !ok || math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	case v == 0 && math.Signbit(v):
		return "-0"
	}

	p := message.NewPrinter(r.tag)
	return p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(0)))
}

// splitDigits reports whether s is an optionally signed run of ASCII digits
// and returns the sign and the digits without leading zeros.
func splitDigits(s string) (sign, digits string, ok bool) {
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
		if sign == "+" {
			sign = ""
		}
	}
	if s == "" {
		return "", "", false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", "", false
		}
	}
	digits = strings.TrimLeft(s, "0")
	if digits == "" {
		digits = "0"
	}
	return sign, digits, true
}

// groupThousands inserts sep between every three digits, counting from the
// right.
func groupThousands(digits, sep string) string {
	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
