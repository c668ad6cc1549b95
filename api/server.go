/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions. This
  is the wiring layer between URLs and handlers; the record book itself is
  strictly local and single-user, so CORS only admits localhost UIs.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Localhost frontend origins

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", h.GetDashboard)

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", h.AddTransaction)
			r.Get("/filtered", h.GetFiltered)
			r.Put("/filter", h.SetFilter)
			r.Delete("/{id}", h.DeleteTransaction)
			r.Put("/{id}/method", h.UpdatePaymentMethod)
		})

		r.Route("/shift", func(r chi.Router) {
			r.Get("/", h.GetShift)
			r.Put("/", h.SaveShift)
			r.Post("/end", h.EndShift)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", h.ListHistory)
			r.Delete("/", h.ClearHistory)
			r.Get("/{id}", h.GetShiftSummary)
			r.Delete("/{id}", h.DeleteShift)
		})

		r.Route("/prices", func(r chi.Router) {
			r.Get("/", h.GetPrices)
			r.Put("/", h.SetPrices)
		})

		r.Route("/calculator", func(r chi.Router) {
			r.Post("/amount", h.CalculateAmountMode)
			r.Post("/volume", h.CalculateVolumeMode)
		})

		r.Get("/export", h.Export)
		r.Post("/import", h.Import)
		r.Delete("/data", h.ClearData)
	})

	return r
}
