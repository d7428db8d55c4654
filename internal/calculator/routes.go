package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix. The session middleware must already be in
// the chain.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/calculator", func(r chi.Router) {
		r.Get("/state", h.GetState)
		r.Post("/actions", h.PostAction)
		r.Get("/history", h.GetHistory)
		r.Post("/evaluate", h.Evaluate)
		r.Post("/replay", h.Replay)
	})
}
