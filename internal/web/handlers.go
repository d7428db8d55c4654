package web

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
)

// Handler serves the keypad page.
type Handler struct {
	dispatcher *calculator.Dispatcher
}

func NewHandler(d *calculator.Dispatcher) *Handler {
	return &Handler{dispatcher: d}
}

// Index handles GET /. The history modal is open when log=open.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	s := h.dispatcher.State(session.IDFromContext(r.Context()))
	data := newPageData(h.dispatcher.Reducer(), s, r.URL.Query().Get("log") == "open")
	renderPage(w, r, Calculator(data), Page(data))
}

// PressKey handles POST /keys. Plain form posts are redirected back to the
// page; HTMX posts get the refreshed fragment.
func (h *Handler) PressKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	span := trace.SpanFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "key", "invalid form", err, http.StatusBadRequest, w)
		return
	}

	a, err := calculator.ParseAction(r.PostForm.Get("action"), r.PostForm.Get("value"))
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "key", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	keyPresses.Add(ctx, 1, metric.WithAttributes(attribute.String("action", string(a.Kind()))))
	s := h.dispatcher.Dispatch(ctx, session.IDFromContext(ctx), a)

	if !isHTMXRequest(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := newPageData(h.dispatcher.Reducer(), s, false)
	renderPage(w, r, Calculator(data), Page(data))
}
