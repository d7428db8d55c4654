package calculator

import (
	"context"
	"math"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Dispatcher applies keypad actions to the state of one session at a time.
type Dispatcher struct {
	store   *session.Store[State]
	reducer *Reducer
}

func NewDispatcher(store *session.Store[State], reducer *Reducer) *Dispatcher {
	return &Dispatcher{store: store, reducer: reducer}
}

// Reducer returns the reducer used for every dispatch.
func (d *Dispatcher) Reducer() *Reducer {
	return d.reducer
}

// State returns the session's current state; unknown sessions start empty.
func (d *Dispatcher) State(sessionID string) State {
	s, _ := d.store.Load(sessionID)
	return s
}

// Dispatch reduces the session's state with a and stores the result.
func (d *Dispatcher) Dispatch(ctx context.Context, sessionID string, a Action) State {
	logger := observability.LoggerWithTrace(ctx).With(zap.String("session_id", sessionID))

	ctx, span := tracer.Start(ctx, "calculator.dispatch",
		trace.WithAttributes(
			attribute.String("calculator.action", string(a.Kind())),
			attribute.String("session.id", sessionID),
		),
	)
	defer span.End()

	var before State
	start := time.Now()
	next := d.store.Update(sessionID, func(s State) State {
		before = s
		return d.reducer.Reduce(s, a)
	})
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	observeTransition(ctx, span, logger, a, before, next, elapsed)
	return next
}

// observeTransition records metrics, span data and logs for one reduction.
func observeTransition(ctx context.Context, span trace.Span, logger *zap.Logger, a Action, before, next State, elapsedMS float64) {
	changed := !sameState(before, next)

	attrs := metric.WithAttributes(
		attribute.String("action", string(a.Kind())),
		attribute.Bool("changed", changed),
	)
	actionsCounter.Add(ctx, 1, attrs)
	dispatchHistogram.Record(ctx, elapsedMS, attrs)

	span.SetAttributes(
		attribute.Bool("calculator.changed", changed),
		attribute.Int("calculator.history_length", len(next.History)),
	)

	logger.Debug("action dispatched",
		zap.String("action", string(a.Kind())),
		zap.Bool("changed", changed),
		zap.String("current_operand", next.CurrentOperand),
		zap.Float64("duration_ms", elapsedMS),
	)

	if len(next.History) == len(before.History) {
		return
	}

	record := next.History[len(next.History)-1]
	opAttrs := metric.WithAttributes(attribute.String("operation", before.Operation.Name()))
	evaluationsCounter.Add(ctx, 1, opAttrs)
	if v, err := strconv.ParseFloat(next.CurrentOperand, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		resultGauge.Record(ctx, v, opAttrs)
	}

	span.AddEvent("history.appended", trace.WithAttributes(
		attribute.String("record", record),
	))

	logger.Info("calculation recorded",
		zap.String("operation", before.Operation.Name()),
		zap.String("record", record),
		zap.Int("history_length", len(next.History)),
	)
}

// sameState reports whether two states are indistinguishable. History only
// ever grows, so comparing lengths is enough.
func sameState(a, b State) bool {
	return a.CurrentOperand == b.CurrentOperand &&
		a.PreviousOperand == b.PreviousOperand &&
		a.Operation == b.Operation &&
		a.Overwrite == b.Overwrite &&
		len(a.History) == len(b.History)
}
