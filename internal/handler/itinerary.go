package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/nomadscompass/backend/internal/domain"
	"github.com/nomadscompass/backend/internal/middleware"
)

// itineraryRequest is the JSON body for POST /itineraries.
type itineraryRequest struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

// handleCreateItinerary handles POST /itineraries.
func (s *Server) handleCreateItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, errMissingIdentity)
		return
	}

	var req itineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	itinerary, err := s.itineraries.Create(r.Context(), userID, req.Name, req.Notes)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, itinerary)
}

// itineraryListResponse is the paginated body for GET /itineraries.
type itineraryListResponse struct {
	Items []domain.Itinerary `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// handleListItineraries handles GET /itineraries?page=&limit=.
func (s *Server) handleListItineraries(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, errMissingIdentity)
		return
	}

	p := paginationFromQuery(r)
	items, total, err := s.itineraries.ListByOwner(r.Context(), userID, p)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, itineraryListResponse{
		Items: items,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}

// handleGetItinerary handles GET /itineraries/{itineraryID}.
func (s *Server) handleGetItinerary(w http.ResponseWriter, r *http.Request) {
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
	respondJSON(w, http.StatusOK, itinerary)
}

// handleDeleteItinerary handles DELETE /itineraries/{itineraryID}.
func (s *Server) handleDeleteItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, errMissingIdentity)
		return
	}
	id, ok := parseUUIDParam(w, r, "itineraryID")
	if !ok {
		return
	}

	if err := s.itineraries.Delete(r.Context(), userID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// legRequest is the JSON body for POST /itineraries/{itineraryID}/legs.
// TravelDate is optional, formatted YYYY-MM-DD.
type legRequest struct {
	OriginCode      string `json:"origin_code"`
	DestinationCode string `json:"destination_code"`
	TravelDate      string `json:"travel_date"`
}

// handleAddLeg handles POST /itineraries/{itineraryID}/legs.
func (s *Server) handleAddLeg(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, errMissingIdentity)
		return
	}
	id, ok := parseUUIDParam(w, r, "itineraryID")
	if !ok {
		return
	}

	var req legRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	leg := domain.Leg{
		ItineraryID:     id,
		OriginCode:      req.OriginCode,
		DestinationCode: req.DestinationCode,
	}
	if req.TravelDate != "" {
		date, err := time.Parse("2006-01-02", req.TravelDate)
		if err != nil {
			respondBadRequest(w, "travel_date must be formatted YYYY-MM-DD")
			return
		}
		leg.TravelDate = &date
	}

	created, err := s.itineraries.AddLeg(r.Context(), userID, leg)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// handleListLegs handles GET /itineraries/{itineraryID}/legs.
func (s *Server) handleListLegs(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, errMissingIdentity)
		return
	}
	id, ok := parseUUIDParam(w, r, "itineraryID")
	if !ok {
		return
	}

	legs, err := s.itineraries.ListLegs(r.Context(), userID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, legs)
}

// handleDeleteLeg handles DELETE /itineraries/{itineraryID}/legs/{legID}.
func (s *Server) handleDeleteLeg(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, errMissingIdentity)
		return
	}
	id, ok := parseUUIDParam(w, r, "itineraryID")
	if !ok {
		return
	}
	legID, ok := parseUUIDParam(w, r, "legID")
	if !ok {
		return
	}

	if err := s.itineraries.DeleteLeg(r.Context(), userID, id, legID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// paginationFromQuery reads page/limit query parameters, falling back to the
// domain defaults on absent or malformed values.
func paginationFromQuery(r *http.Request) domain.PaginationParams {
	var page, limit *int
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = &n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = &n
		}
	}
	return domain.NewPaginationParams(page, limit)
}
