package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes builds the API router. authenticate guards everything that needs a
// logged-in user; construction-time middleware (logging, CORS, rate limits)
// is applied by the caller around the returned router.
func (s *Server) Routes(authenticate func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public surface.
	r.Get("/healthz", s.handleHealth)
	r.Post("/users/register", s.handleRegister)
	r.Post("/token", s.handleToken)
	r.Get("/visa/{code}", s.handleGetCountry)

	// Everything below requires a bearer token.
	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/users/me", s.handleMe)
		r.Put("/users/me", s.handleUpdateMe)

		r.Post("/visa", s.handleCreateCountry)
		r.Put("/visa/{code}", s.handleUpdateCountry)
		r.Delete("/visa/{code}", s.handleDeleteCountry)

		r.Route("/itineraries", func(r chi.Router) {
			r.Post("/", s.handleCreateItinerary)
			r.Get("/", s.handleListItineraries)
			r.Route("/{itineraryID}", func(r chi.Router) {
				r.Get("/", s.handleGetItinerary)
				r.Delete("/", s.handleDeleteItinerary)
				r.Post("/plan", s.handlePlanItinerary)
				r.Post("/legs", s.handleAddLeg)
				r.Get("/legs", s.handleListLegs)
				r.Delete("/legs/{legID}", s.handleDeleteLeg)
			})
		})

		r.Get("/plans/trip", s.handlePlanTrip)

		r.Get("/api/status", s.handleQuotaStatus)
		r.Post("/api/reset-quota", s.handleResetQuota)
	})

	return r
}
