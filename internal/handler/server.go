// Package handler implements the HTTP layer of the Nomad's Compass API.
// Handlers are methods on Server, split into domain-specific files
// (user.go, itinerary.go, plan.go, etc.) that all share the same struct.
// Handlers decode and validate the wire format, call a service, and map the
// result onto HTTP; no business rules live here.
package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nomadscompass/backend/internal/domain"
	"github.com/nomadscompass/backend/internal/service"
)

// UserServicer defines the account operations the handlers depend on.
// Defining interfaces here, in the consumer package, lets handler tests
// inject mocks without touching the service or database layers.
type UserServicer interface {
	Register(ctx context.Context, in service.RegisterInput) (domain.User, error)
	Authenticate(ctx context.Context, email, password string) (string, domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in service.UpdateProfileInput) (domain.User, error)
}

// CountryServicer defines the visa reference-data operations.
type CountryServicer interface {
	Create(ctx context.Context, country domain.Country) (domain.Country, error)
	GetByCode(ctx context.Context, code string) (domain.Country, error)
	Update(ctx context.Context, country domain.Country) (domain.Country, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItineraryServicer defines the itinerary and leg operations.
type ItineraryServicer interface {
	Create(ctx context.Context, ownerID uuid.UUID, name, notes string) (domain.Itinerary, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Itinerary, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	AddLeg(ctx context.Context, ownerID uuid.UUID, leg domain.Leg) (domain.Leg, error)
	ListLegs(ctx context.Context, ownerID, itineraryID uuid.UUID) ([]domain.Leg, error)
	DeleteLeg(ctx context.Context, ownerID, itineraryID, legID uuid.UUID) error
}

// ItineraryPlanner defines the planning operations. *planner.Planner
// satisfies it.
type ItineraryPlanner interface {
	PlanItinerary(ctx context.Context, itinerary domain.Itinerary, user domain.User) domain.FullPlan
	QuotaStatus() map[string]domain.QuotaSnapshot
	ResetQuota(service string)
}

// LegAggregator plans a single ad-hoc leg. *planner.Aggregator satisfies it.
type LegAggregator interface {
	PlanTrip(ctx context.Context, origin, destination string, date *time.Time) domain.TripPlan
}

// Server holds every handler dependency.
type Server struct {
	users       UserServicer
	countries   CountryServicer
	itineraries ItineraryServicer
	planner     ItineraryPlanner
	aggregator  LegAggregator
}

// NewServer constructs the Server with all its dependencies.
func NewServer(users UserServicer, countries CountryServicer, itineraries ItineraryServicer, planner ItineraryPlanner, aggregator LegAggregator) *Server {
	return &Server{
		users:       users,
		countries:   countries,
		itineraries: itineraries,
		planner:     planner,
		aggregator:  aggregator,
	}
}
