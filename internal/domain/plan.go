package domain

import (
	"time"

	"github.com/google/uuid"
)

// FlightOption is one flight returned by the flight-search capability,
// or a generated substitute when live data is unavailable.
// Substituted marks fallback data; it must stay visibly distinguishable
// from live results all the way into the rendered report.
type FlightOption struct {
	Airline       string  `json:"airline"`
	FlightNumber  string  `json:"flight_number,omitempty"`
	Departure     string  `json:"departure"`
	Arrival       string  `json:"arrival"`
	DepartureTime string  `json:"departure_time,omitempty"`
	ArrivalTime   string  `json:"arrival_time,omitempty"`
	Price         float64 `json:"price,omitempty"`
	Currency      string  `json:"currency,omitempty"`
	Substituted   bool    `json:"substituted"`
}

// HotelOption is one hotel returned by the hotel-search capability,
// or a generated substitute.
type HotelOption struct {
	Name         string  `json:"name"`
	Location     string  `json:"location,omitempty"`
	NightlyPrice float64 `json:"nightly_price,omitempty"`
	Currency     string  `json:"currency,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
	Substituted  bool    `json:"substituted"`
}

// TripPlan is the aggregated result for a single leg.
// Visa is nil when no country mapping exists for the destination or the
// lookup failed; Flights and Hotels are never empty — on total failure they
// contain substitute entries so the report always has something to show.
type TripPlan struct {
	OriginCode      string         `json:"origin_code"`
	DestinationCode string         `json:"destination_code"`
	DestinationName string         `json:"destination_name,omitempty"`
	Visa            *Country       `json:"visa_information"`
	Flights         []FlightOption `json:"flight_options"`
	Hotels          []HotelOption  `json:"hotel_options"`
}

// LegPlan pairs a leg with its computed plan.
type LegPlan struct {
	Leg  Leg      `json:"leg"`
	Plan TripPlan `json:"plan"`
}

// SponsorshipOffer is one entry from the static sponsorship catalog.
type SponsorshipOffer struct {
	Brand               string `json:"brand_name"`
	Description         string `json:"offer_description"`
	DestinationSpecific bool   `json:"destination_specific"`
	// DestinationCode scopes a destination-specific offer to one airport code.
	DestinationCode string `json:"destination_code,omitempty"`
}

// FullPlan is the complete planning result for one itinerary.
// LegPlans has exactly one entry per itinerary leg, in leg order.
// Degraded lists the service names currently in substitute mode at
// generation time.
type FullPlan struct {
	ItineraryID   uuid.UUID          `json:"itinerary_id"`
	ItineraryName string             `json:"itinerary_name"`
	GeneratedAt   time.Time          `json:"generated_at"`
	LegPlans      []LegPlan          `json:"leg_plans"`
	Offers        []SponsorshipOffer `json:"sponsorship_offers"`
	Degraded      []string           `json:"degraded_services,omitempty"`
	Report        string             `json:"report"`
}

// QuotaSnapshot is the observable state of one tracked external service.
type QuotaSnapshot struct {
	Substituting bool      `json:"substituting"`
	ErrorCount   int       `json:"error_count"`
	LastChange   time.Time `json:"last_change"`
}
