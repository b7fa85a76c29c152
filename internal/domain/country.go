package domain

import (
	"time"

	"github.com/google/uuid"
)

// Country holds the visa reference data for one destination country.
// Code is the ISO 3166-1 alpha-3 code, always stored upper-case (e.g. "THA").
type Country struct {
	ID                 uuid.UUID         `json:"id"`
	Name               string            `json:"name"`
	Code               string            `json:"code"`
	VisaPolicy         string            `json:"visa_policy"`
	ProcessingTimeDays int               `json:"processing_time_days"`
	Requirements       []VisaRequirement `json:"requirements"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// VisaRequirement is one document a traveller must (or should) bring.
type VisaRequirement struct {
	ID           uuid.UUID `json:"id"`
	CountryID    uuid.UUID `json:"country_id"`
	DocumentName string    `json:"document_name"`
	Description  string    `json:"description,omitempty"`
	IsMandatory  bool      `json:"is_mandatory"`
}
