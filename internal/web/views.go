package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"slices"

	"github.com/a-h/templ"

	"go-chi-calculator/internal/calculator"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// key is one keypad button. Keys with a Link navigate instead of posting an
// action.
type key struct {
	Label  string
	Title  string
	Class  string
	Action calculator.ActionKind
	Value  string
	Link   string
}

func digitKey(d string) key {
	return key{Label: d, Title: d, Action: calculator.KindAddDigit, Value: d}
}

func operationKey(op calculator.Operation) key {
	return key{Label: string(op), Title: op.Name(), Class: "green", Action: calculator.KindChooseOperation, Value: string(op)}
}

const (
	historyOpenLink  = "/?log=open"
	historyCloseLink = "/"
)

// keypad lists the buttons in grid order, four per row.
var keypad = []key{
	{Label: "C", Title: "clear", Class: "red", Action: calculator.KindClear},
	{Label: "⌫", Title: "backspace", Action: calculator.KindDeleteDigit},
	operationKey(calculator.OpModulo),
	operationKey(calculator.OpDivide),
	digitKey("7"), digitKey("8"), digitKey("9"),
	operationKey(calculator.OpMultiply),
	digitKey("4"), digitKey("5"), digitKey("6"),
	operationKey(calculator.OpSubtract),
	digitKey("1"), digitKey("2"), digitKey("3"),
	operationKey(calculator.OpAdd),
	{Label: "⏱", Title: "history", Link: historyOpenLink},
	digitKey("0"),
	digitKey("."),
	{Label: "=", Title: "evaluate", Class: "green", Action: calculator.KindEvaluate},
}

type pageData struct {
	Screen      calculator.Screen
	History     []string
	ShowHistory bool
	Keys        []key
}

func newPageData(r *calculator.Reducer, s calculator.State, showHistory bool) pageData {
	return pageData{
		Screen:      r.Screen(s),
		History:     s.History,
		ShowHistory: showHistory,
		Keys:        keysFor(showHistory),
	}
}

// keysFor returns the keypad with the history key pointing at the opposite
// modal state.
func keysFor(showHistory bool) []key {
	if !showHistory {
		return keypad
	}
	keys := slices.Clone(keypad)
	for i := range keys {
		if keys[i].Link == historyOpenLink {
			keys[i].Link = historyCloseLink
		}
	}
	return keys
}

// component adapts a named html/template into a templ.Component.
func component(name string, data pageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return templates.ExecuteTemplate(w, name, data)
	})
}

// Page is the full HTML document.
func Page(data pageData) templ.Component {
	return component("page", data)
}

// Calculator is the #calculator fragment swapped in by HTMX.
func Calculator(data pageData) templ.Component {
	return component("calculator", data)
}
