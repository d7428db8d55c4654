package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
	"go-chi-calculator/internal/web"
)

// Options tunes router behaviour that depends on deployment.
type Options struct {
	// SecureCookies sets the Secure flag on the session cookie.
	SecureCookies bool
}

func NewRouter(dispatcher *calculator.Dispatcher, opts Options) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())
	r.Handle("/static/*", web.StaticHandler())

	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(opts.SecureCookies))

		calculator.RegisterRoutes(r, calculator.NewHandler(dispatcher))
		web.RegisterRoutes(r, web.NewHandler(dispatcher))
	})

	return r
}
