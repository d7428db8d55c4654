package calculator

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Operation is a binary keypad operation, stored as its display symbol.
type Operation string

const (
	OpAdd      Operation = "+"
	OpSubtract Operation = "-"
	OpMultiply Operation = "×"
	OpDivide   Operation = "÷"
	OpModulo   Operation = "%"
)

// operationAliases maps every accepted wire spelling to its operation.
var operationAliases = map[string]Operation{
	"+":        OpAdd,
	"add":      OpAdd,
	"-":        OpSubtract,
	"subtract": OpSubtract,
	"×":        OpMultiply,
	"*":        OpMultiply,
	"x":        OpMultiply,
	"multiply": OpMultiply,
	"÷":        OpDivide,
	"/":        OpDivide,
	"divide":   OpDivide,
	"%":        OpModulo,
	"modulo":   OpModulo,
}

// ParseOperation accepts a symbol, an ASCII alias or an operation name.
func ParseOperation(s string) (Operation, error) {
	op, ok := operationAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidOperation, s)
	}
	return op, nil
}

// Name returns the lower-case operation name used in telemetry attributes.
func (o Operation) Name() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	case OpModulo:
		return "modulo"
	}
	return "none"
}

func (o Operation) apply(a, b float64) (float64, bool) {
	switch o {
	case OpAdd:
		return a + b, true
	case OpSubtract:
		return a - b, true
	case OpMultiply:
		return a * b, true
	case OpDivide:
		return a / b, true
	case OpModulo:
		return math.Mod(a, b), true
	}
	return 0, false
}

// Compute applies op to the two operand strings and returns the formatted
// result. It returns "" when either operand has no numeric prefix or op is
// unknown. Division and modulo by zero are not guarded.
func Compute(previous string, op Operation, current string) string {
	a, ok := parseLeadingFloat(previous)
	if !ok {
		return ""
	}
	b, ok := parseLeadingFloat(current)
	if !ok {
		return ""
	}

	result, ok := op.apply(a, b)
	if !ok {
		return ""
	}
	return FormatResult(result)
}

const numericLiteral = `[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`

var (
	leadingNumber = regexp.MustCompile(`^` + numericLiteral)
	wholeNumber   = regexp.MustCompile(`^` + numericLiteral + `$`)
)

// parseLeadingFloat reads the longest numeric prefix of s, ignoring leading
// white space and any trailing garbage.
func parseLeadingFloat(s string) (float64, bool) {
	literal := leadingNumber.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if literal == "" {
		return 0, false
	}
	return parseLiteral(literal)
}

// parseNumber converts s only if all of it, after trimming white space, is a
// numeric literal. Blank input is zero.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	if !wholeNumber.MatchString(s) {
		return 0, false
	}
	return parseLiteral(s)
}

func parseLiteral(literal string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.Replace(literal, "Infinity", "Inf", 1), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			// Overflow and underflow saturate to ±Inf and 0.
			return f, true
		}
		return 0, false
	}
	return f, true
}

// FormatResult renders f with the shortest round-trip digits, using plain
// notation for magnitudes in [1e-6, 1e21) and exponent notation otherwise
// (1e+21, 1.5e-7). Non-finite values render as Infinity, -Infinity and NaN.
func FormatResult(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	mantissa, exponent, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	return mantissa + "e" + exponent[:1] + strings.TrimLeft(exponent[1:], "0")
}
