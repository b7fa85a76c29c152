package domain

import (
	"time"

	"github.com/google/uuid"
)

// Itinerary is the top-level aggregate for trip planning; legs belong to it.
// Legs is populated in leg-position order by the repo layer.
type Itinerary struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes,omitempty"`
	Legs      []Leg     `json:"legs"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Leg is one origin→destination travel segment of an itinerary.
// Legs are read-only inputs to planning; the planner never mutates them.
// TravelDate is nil when the traveller has not fixed a date yet.
type Leg struct {
	ID              uuid.UUID  `json:"id"`
	ItineraryID     uuid.UUID  `json:"itinerary_id"`
	OriginCode      string     `json:"origin_code"`
	DestinationCode string     `json:"destination_code"`
	TravelDate      *time.Time `json:"travel_date,omitempty"`
	Position        int        `json:"position"`
	CreatedAt       time.Time  `json:"created_at"`
}
