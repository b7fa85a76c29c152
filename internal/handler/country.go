package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nomadscompass/backend/internal/domain"
)

// countryRequest is the JSON body for creating or updating a country.
type countryRequest struct {
	Name               string               `json:"name"`
	Code               string               `json:"code"`
	VisaPolicy         string               `json:"visa_policy"`
	ProcessingTimeDays int                  `json:"processing_time_days"`
	Requirements       []requirementRequest `json:"requirements"`
}

type requirementRequest struct {
	DocumentName string `json:"document_name"`
	Description  string `json:"description"`
	IsMandatory  bool   `json:"is_mandatory"`
}

func (req countryRequest) toDomain() domain.Country {
	country := domain.Country{
		Name:               req.Name,
		Code:               req.Code,
		VisaPolicy:         req.VisaPolicy,
		ProcessingTimeDays: req.ProcessingTimeDays,
	}
	for _, r := range req.Requirements {
		country.Requirements = append(country.Requirements, domain.VisaRequirement{
			DocumentName: r.DocumentName,
			Description:  r.Description,
			IsMandatory:  r.IsMandatory,
		})
	}
	return country
}

// handleCreateCountry handles POST /visa.
func (s *Server) handleCreateCountry(w http.ResponseWriter, r *http.Request) {
	var req countryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	country, err := s.countries.Create(r.Context(), req.toDomain())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, country)
}

// handleGetCountry handles GET /visa/{code}.
func (s *Server) handleGetCountry(w http.ResponseWriter, r *http.Request) {
	country, err := s.countries.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, country)
}

// handleUpdateCountry handles PUT /visa/{code}. The path code identifies the
// record; the body may carry a new code to rename it.
func (s *Server) handleUpdateCountry(w http.ResponseWriter, r *http.Request) {
	existing, err := s.countries.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respondError(w, err)
		return
	}

	var req countryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	country := req.toDomain()
	country.ID = existing.ID
	updated, err := s.countries.Update(r.Context(), country)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// handleDeleteCountry handles DELETE /visa/{code}.
func (s *Server) handleDeleteCountry(w http.ResponseWriter, r *http.Request) {
	existing, err := s.countries.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.countries.Delete(r.Context(), existing.ID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseUUIDParam reads a UUID path parameter, reporting false after writing
// the error response on malformed input.
func parseUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondBadRequest(w, name+" must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
