package calculator

import "slices"

// State is the full keypad state for one calculator session. It is replaced
// wholesale by every reduction; an empty operand string means "absent".
type State struct {
	CurrentOperand  string
	PreviousOperand string
	Operation       Operation
	Overwrite       bool
	History         []string
}

// Screen is the formatted projection of a State shown on the display.
type Screen struct {
	Previous  string
	Operation Operation
	Current   string
}

// withRecord returns a copy of history with record appended. The backing
// array of the input is never written to.
func withRecord(history []string, record string) []string {
	return append(slices.Clone(history), record)
}
