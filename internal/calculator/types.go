package calculator

// ActionRequest is the JSON form of one keypad action.
type ActionRequest struct {
	Type      string `json:"type"`                // "add-digit", "choose-operation", "clear", "delete-digit", "evaluate"
	Digit     string `json:"digit,omitempty"`     // add-digit only
	Operation string `json:"operation,omitempty"` // choose-operation only
}

// Action converts the request into a validated Action.
func (req ActionRequest) Action() (Action, error) {
	value := req.Digit
	if ActionKind(req.Type) == KindChooseOperation {
		value = req.Operation
	}
	return ParseAction(req.Type, value)
}

// ScreenResponse is the formatted display.
type ScreenResponse struct {
	Previous  string `json:"previous"`
	Operation string `json:"operation"`
	Current   string `json:"current"`
}

// StateResponse is the JSON response for every session-scoped endpoint.
type StateResponse struct {
	CurrentOperand  string         `json:"current_operand"`
	PreviousOperand string         `json:"previous_operand"`
	Operation       string         `json:"operation"`
	Overwrite       bool           `json:"overwrite"`
	History         []string       `json:"history"`
	Screen          ScreenResponse `json:"screen"`
}

// HistoryResponse is the JSON response for GET /calculator/history.
type HistoryResponse struct {
	History []string `json:"history"`
}

// EvaluateRequest is the JSON body for POST /calculator/evaluate.
type EvaluateRequest struct {
	PreviousOperand string `json:"previous_operand"`
	Operation       string `json:"operation"`
	CurrentOperand  string `json:"current_operand"`
}

// EvaluateResponse is the JSON response for POST /calculator/evaluate.
type EvaluateResponse struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
	Record     string `json:"record"`
}

// ReplayRequest is the JSON body for POST /calculator/replay.
type ReplayRequest struct {
	Actions []ActionRequest `json:"actions"`
}

// ReplayStep records one applied action.
type ReplayStep struct {
	Type           ActionKind `json:"type"`
	Changed        bool       `json:"changed"`
	CurrentOperand string     `json:"current_operand"`
}

// ReplayResponse is the JSON response for POST /calculator/replay.
type ReplayResponse struct {
	Steps []ReplayStep  `json:"steps"`
	State StateResponse `json:"state"`
}

func newStateResponse(r *Reducer, s State) StateResponse {
	screen := r.Screen(s)
	history := s.History
	if history == nil {
		history = []string{}
	}
	return StateResponse{
		CurrentOperand:  s.CurrentOperand,
		PreviousOperand: s.PreviousOperand,
		Operation:       string(s.Operation),
		Overwrite:       s.Overwrite,
		History:         history,
		Screen: ScreenResponse{
			Previous:  screen.Previous,
			Operation: string(screen.Operation),
			Current:   screen.Current,
		},
	}
}
