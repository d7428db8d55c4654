package calculator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownAction    = errors.New("unknown action")
	ErrInvalidDigit     = errors.New("invalid digit")
	ErrInvalidOperation = errors.New("invalid operation")
)

// ActionKind is the wire name of an action.
type ActionKind string

const (
	KindAddDigit        ActionKind = "add-digit"
	KindChooseOperation ActionKind = "choose-operation"
	KindClear           ActionKind = "clear"
	KindDeleteDigit     ActionKind = "delete-digit"
	KindEvaluate        ActionKind = "evaluate"
)

// Action is one keypad input. The unexported method keeps other packages from
// declaring new variants, though a type embedding one of the variants below
// still satisfies it.
type Action interface {
	Kind() ActionKind
	action()
}

// AddDigit appends a digit or the decimal point to the current operand.
type AddDigit struct {
	Digit Digit
}

// ChooseOperation selects the pending binary operation.
type ChooseOperation struct {
	Operation Operation
}

// Clear resets everything except the history.
type Clear struct{}

// DeleteDigit removes the last character of the current operand.
type DeleteDigit struct{}

// Evaluate computes the pending expression and records it in the history.
type Evaluate struct{}

func (AddDigit) Kind() ActionKind        { return KindAddDigit }
func (ChooseOperation) Kind() ActionKind { return KindChooseOperation }
func (Clear) Kind() ActionKind           { return KindClear }
func (DeleteDigit) Kind() ActionKind     { return KindDeleteDigit }
func (Evaluate) Kind() ActionKind        { return KindEvaluate }

func (AddDigit) action()        {}
func (ChooseOperation) action() {}
func (Clear) action()           {}
func (DeleteDigit) action()     {}
func (Evaluate) action()        {}

// Digit is a single keypad character: 0-9 or ".".
type Digit string

// DecimalPoint is the only non-numeric Digit.
const DecimalPoint Digit = "."

// ParseDigit validates a keypad digit.
func ParseDigit(s string) (Digit, error) {
	if s == string(DecimalPoint) {
		return DecimalPoint, nil
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		return Digit(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDigit, s)
}

// ParseAction builds an Action from its wire kind and optional payload value.
// The value is the digit for add-digit, the operation for choose-operation,
// and ignored otherwise.
func ParseAction(kind, value string) (Action, error) {
	value = strings.TrimSpace(value)

	switch ActionKind(strings.TrimSpace(kind)) {
	case KindAddDigit:
		d, err := ParseDigit(value)
		if err != nil {
			return nil, err
		}
		return AddDigit{Digit: d}, nil
	case KindChooseOperation:
		op, err := ParseOperation(value)
		if err != nil {
			return nil, err
		}
		return ChooseOperation{Operation: op}, nil
	case KindClear:
		return Clear{}, nil
	case KindDeleteDigit:
		return DeleteDigit{}, nil
	case KindEvaluate:
		return Evaluate{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
}
