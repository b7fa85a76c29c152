package planner

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/nomadscompass/backend/internal/domain"
)

// VisaSource is the slice of the country repo the aggregator needs.
// Defined here, in the consumer package, so tests can inject a stub without
// touching the database layer.
type VisaSource interface {
	GetByCode(ctx context.Context, code string) (domain.Country, error)
}

// FlightSearcher is the live flight-search capability.
type FlightSearcher interface {
	SearchRoute(ctx context.Context, origin, destination string, date *time.Time) ([]domain.FlightOption, error)
}

// HotelSearcher is the live hotel-search capability.
type HotelSearcher interface {
	ResolveLocation(ctx context.Context, city string) (string, error)
	SearchByLocation(ctx context.Context, locationID string) ([]domain.HotelOption, error)
}

// Aggregator produces one TripPlan for a single leg. It owns the
// degraded-mode policy: every internal failure is converted into substitute
// data, so PlanTrip never returns an error. The end product is advisory
// travel information, and a partially substituted plan beats no plan.
type Aggregator struct {
	visas   VisaSource
	flights FlightSearcher
	hotels  HotelSearcher
	quota   *QuotaTracker
	dir     *Directory
	log     *slog.Logger
}

// NewAggregator constructs an Aggregator from its capabilities.
// The quota tracker is shared with other aggregators and with the admin
// surface; pass the same instance everywhere.
func NewAggregator(visas VisaSource, flights FlightSearcher, hotels HotelSearcher, quota *QuotaTracker, dir *Directory, log *slog.Logger) *Aggregator {
	return &Aggregator{
		visas:   visas,
		flights: flights,
		hotels:  hotels,
		quota:   quota,
		dir:     dir,
		log:     log,
	}
}

// PlanTrip aggregates visa, flight, and hotel data for one leg.
// It never fails: unknown destinations short-circuit to a "route unknown"
// plan, and upstream failures degrade to substitute entries.
func (a *Aggregator) PlanTrip(ctx context.Context, origin, destination string, date *time.Time) domain.TripPlan {
	origin = strings.ToUpper(origin)
	destination = strings.ToUpper(destination)

	dest, known := a.dir.Lookup(destination)
	if !known {
		a.log.InfoContext(ctx, "unknown destination, serving route-unknown plan", "destination", destination)
		return unknownRoutePlan(origin, destination)
	}

	plan := domain.TripPlan{
		OriginCode:      origin,
		DestinationCode: destination,
		DestinationName: dest.Name,
	}

	plan.Visa = a.fetchVisa(ctx, dest.CountryCode)
	plan.Flights = a.fetchFlights(ctx, origin, destination, date)
	plan.Hotels = a.fetchHotels(ctx, destination, dest.Name)

	return plan
}

// fetchVisa looks up visa reference data for the destination country.
// Absence or lookup failure never aborts the leg; the plan proceeds with a
// nil visa block.
func (a *Aggregator) fetchVisa(ctx context.Context, countryCode string) *domain.Country {
	country, err := a.visas.GetByCode(ctx, countryCode)
	if err != nil {
		a.log.WarnContext(ctx, "visa lookup failed, continuing without visa data",
			"country_code", countryCode, "error", err)
		return nil
	}
	return &country
}

// fetchFlights returns live flight options when the quota tracker allows,
// substitute options otherwise. Empty live results substitute too: the
// report renderer must always have flights to show.
func (a *Aggregator) fetchFlights(ctx context.Context, origin, destination string, date *time.Time) []domain.FlightOption {
	if a.quota.IsSubstituting(ServiceFlights) {
		return substituteFlights(origin, destination, date)
	}

	options, err := a.flights.SearchRoute(ctx, origin, destination, date)
	if err != nil {
		a.recordFailure(ctx, ServiceFlights, err)
		return substituteFlights(origin, destination, date)
	}

	a.quota.RecordSuccess(ServiceFlights)
	if len(options) == 0 {
		a.log.InfoContext(ctx, "flight search returned no options, substituting",
			"origin", origin, "destination", destination)
		return substituteFlights(origin, destination, date)
	}
	return options
}

// fetchHotels resolves the destination city to a location ID, then searches
// stays, substituting on any failure or empty step. Hotel quota state is
// tracked independently of flights.
func (a *Aggregator) fetchHotels(ctx context.Context, destination, cityName string) []domain.HotelOption {
	if a.quota.IsSubstituting(ServiceHotels) {
		return substituteHotelOptions(destination, cityName)
	}

	locationID, err := a.hotels.ResolveLocation(ctx, cityName)
	if err != nil {
		a.recordFailure(ctx, ServiceHotels, err)
		return substituteHotelOptions(destination, cityName)
	}
	if locationID == "" {
		a.log.InfoContext(ctx, "no location id for destination, substituting", "destination", destination)
		return substituteHotelOptions(destination, cityName)
	}

	options, err := a.hotels.SearchByLocation(ctx, locationID)
	if err != nil {
		a.recordFailure(ctx, ServiceHotels, err)
		return substituteHotelOptions(destination, cityName)
	}

	a.quota.RecordSuccess(ServiceHotels)
	if len(options) == 0 {
		a.log.InfoContext(ctx, "hotel search returned no options, substituting", "destination", destination)
		return substituteHotelOptions(destination, cityName)
	}
	return options
}

// recordFailure classifies an upstream error and routes it to the right
// tracker transition: conclusive quota signals trip immediately, anything
// else counts toward the threshold.
func (a *Aggregator) recordFailure(ctx context.Context, service string, err error) {
	if IsQuotaSignal(err) {
		a.log.WarnContext(ctx, "quota signal from upstream, switching to substitute data",
			"service", service, "error", err)
		a.quota.RecordQuotaSignal(service)
		return
	}
	a.log.WarnContext(ctx, "upstream failure, serving substitute data",
		"service", service, "error", err)
	a.quota.RecordError(service)
}
