package calculator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	maxBodyBytes   = 64 << 10
	maxReplaySteps = 1000
)

// Handler serves the calculator JSON API.
type Handler struct {
	dispatcher *Dispatcher
}

func NewHandler(d *Dispatcher) *Handler {
	return &Handler{dispatcher: d}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

// ---------------------------------------------------------------------------
// Handlers: session state
// ---------------------------------------------------------------------------

// GetState handles GET /calculator/state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	s := h.dispatcher.State(session.IDFromContext(r.Context()))
	handlers.WriteJSON(w, http.StatusOK, newStateResponse(h.dispatcher.Reducer(), s))
}

// GetHistory handles GET /calculator/history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	s := h.dispatcher.State(session.IDFromContext(r.Context()))
	history := s.History
	if history == nil {
		history = []string{}
	}
	handlers.WriteJSON(w, http.StatusOK, HistoryResponse{History: history})
}

// PostAction handles POST /calculator/actions. It dispatches one keypad action
// against the caller's session.
func (h *Handler) PostAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	span := trace.SpanFromContext(ctx)

	var req ActionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "action", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	a, err := req.Action()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "action", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	s := h.dispatcher.Dispatch(ctx, session.IDFromContext(ctx), a)
	handlers.WriteJSON(w, http.StatusOK, newStateResponse(h.dispatcher.Reducer(), s))
}

// ---------------------------------------------------------------------------
// Handlers: stateless
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate. It computes a single expression
// without touching any session.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req EvaluateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	op, err := ParseOperation(req.Operation)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.String("calculator.operation", op.Name()),
		attribute.String("calculator.operand.previous", req.PreviousOperand),
		attribute.String("calculator.operand.current", req.CurrentOperand),
	)

	start := time.Now()
	result := Compute(req.PreviousOperand, op, req.CurrentOperand)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	if result == "" {
		err := fmt.Errorf("previous=%q current=%q", req.PreviousOperand, req.CurrentOperand)
		observability.RecordError(ctx, span, logger, errorCounter, op.Name(), "operands are not numeric", err, http.StatusUnprocessableEntity, w)
		return
	}

	reducer := h.dispatcher.Reducer()
	resp := EvaluateResponse{
		Expression: fmt.Sprintf("%s %s %s", reducer.FormatOperand(req.PreviousOperand), op, reducer.FormatOperand(req.CurrentOperand)),
		Result:     result,
		Record:     reducer.Record(req.PreviousOperand, op, req.CurrentOperand, result),
	}

	evaluationsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op.Name())))

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("expression evaluated",
		zap.String("operation", op.Name()),
		zap.String("record", resp.Record),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// Replay handles POST /calculator/replay. It runs a sequence of actions on a
// fresh state, creating a child span for every step.
func (h *Handler) Replay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	// Parent span for the entire replay
	ctx, span := tracer.Start(ctx, "calculator.replay",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ReplayRequest
	if err := decodeJSON(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "replay", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	switch {
	case len(req.Actions) == 0:
		observability.RecordError(ctx, span, logger, errorCounter, "replay", "no actions provided", fmt.Errorf("actions array is empty"), http.StatusBadRequest, w)
		return
	case len(req.Actions) > maxReplaySteps:
		observability.RecordError(ctx, span, logger, errorCounter, "replay", "too many actions", fmt.Errorf("%d actions exceeds limit of %d", len(req.Actions), maxReplaySteps), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Int("replay.steps_count", len(req.Actions)))

	reducer := h.dispatcher.Reducer()
	var state State
	steps := make([]ReplayStep, 0, len(req.Actions))

	for i, ar := range req.Actions {
		// Child span per step
		stepCtx, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.replay.step.%d", i),
			trace.WithAttributes(
				attribute.Int("replay.step.index", i),
				attribute.String("replay.step.type", ar.Type),
			),
		)

		a, err := ar.Action()
		if err != nil {
			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			msg := fmt.Sprintf("invalid action at step %d", i)
			observability.RecordError(ctx, span, logger, errorCounter, "replay", msg, err, http.StatusBadRequest, w)
			return
		}

		start := time.Now()
		before := state
		state = reducer.Reduce(state, a)
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0

		observeTransition(stepCtx, stepSpan, logger, a, before, state, elapsed)
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		steps = append(steps, ReplayStep{
			Type:           a.Kind(),
			Changed:        !sameState(before, state),
			CurrentOperand: state.CurrentOperand,
		})
	}

	span.AddEvent("replay.complete", trace.WithAttributes(
		attribute.Int("total_steps", len(steps)),
		attribute.Int("history_length", len(state.History)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("replay completed",
		zap.Int("steps", len(steps)),
		zap.Int("history_length", len(state.History)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ReplayResponse{
		Steps: steps,
		State: newStateResponse(reducer, state),
	})
}
