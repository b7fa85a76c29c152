package handler

import (
	"net/http"
	"time"

	"github.com/nomadscompass/backend/internal/middleware"
)

// handlePlanItinerary handles POST /itineraries/{itineraryID}/plan.
// Planning never fails once the itinerary is resolved; degraded external
// services show up inside the plan, not as an HTTP error.
func (s *Server) handlePlanItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, errMissingIdentity)
		return
	}
	id, ok := parseUUIDParam(w, r, "itineraryID")
	if !ok {
		return
	}

	itinerary, err := s.itineraries.GetByID(r.Context(), userID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	user, err := s.users.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	plan := s.planner.PlanItinerary(r.Context(), itinerary, user)
	respondJSON(w, http.StatusOK, plan)
}

// handlePlanTrip handles GET /plans/trip?origin=&destination=&date=.
// It plans a single ad-hoc leg without persisting anything.
func (s *Server) handlePlanTrip(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	origin := q.Get("origin")
	destination := q.Get("destination")
	if origin == "" || destination == "" {
		respondBadRequest(w, "origin and destination are required")
		return
	}

	var date *time.Time
	if v := q.Get("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondBadRequest(w, "date must be formatted YYYY-MM-DD")
			return
		}
		date = &parsed
	}

	plan := s.aggregator.PlanTrip(r.Context(), origin, destination, date)
	respondJSON(w, http.StatusOK, plan)
}

// handleQuotaStatus handles GET /api/status: the per-service view of the
// quota tracker for operators.
func (s *Server) handleQuotaStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.planner.QuotaStatus())
}

// handleResetQuota handles POST /api/reset-quota?service=.
// Without a service parameter every tracked service is reset.
func (s *Server) handleResetQuota(w http.ResponseWriter, r *http.Request) {
	service := r.URL.Query().Get("service")
	s.planner.ResetQuota(service)
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
