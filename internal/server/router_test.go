package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
	"go-chi-calculator/internal/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestRouter() http.Handler {
	store := session.NewStore[calculator.State](time.Hour)
	d := calculator.NewDispatcher(store, calculator.NewReducer(calculator.DefaultLocale))
	return NewRouter(d, Options{})
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}

	if len(w.Result().Cookies()) != 0 {
		t.Fatal("did not expect a session cookie on /health")
	}
}

func TestNewRouterMetricsEndpoint(t *testing.T) {
	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/metrics", nil), newTestRouter())
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
}

func TestNewRouterCalculatorActionSetsHeadersAndOmitsRequestIDInBody(t *testing.T) {
	observability.Logger = zap.NewNop()
	if err := calculator.InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}

	router := newTestRouter()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/actions", calculator.ActionRequest{Type: "add-digit", Digit: "5"})
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected session cookie on first calculator request")
	}

	var payload map[string]any
	testutil.DecodeJSONBody(t, w.Result().Body, &payload)

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}

	if got, ok := payload["current_operand"].(string); !ok || got != "5" {
		t.Fatalf("expected current_operand 5, got %#v", payload["current_operand"])
	}
}

func TestNewRouterServesKeypad(t *testing.T) {
	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/", nil), newTestRouter())
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
}
