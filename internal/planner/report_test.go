package planner_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomadscompass/backend/internal/domain"
	"github.com/nomadscompass/backend/internal/planner"
)

// fullReport builds a plan through the real planner so the report covers
// every block: heading, visa, flights, hotels, offers, tips.
func fullReport(t *testing.T) string {
	t.Helper()

	country := thailand()
	agg := &mockTripAggregator{
		planTrip: func(_ context.Context, origin, destination string, _ *time.Time) domain.TripPlan {
			return domain.TripPlan{
				OriginCode:      origin,
				DestinationCode: destination,
				DestinationName: "Bangkok",
				Visa:            &country,
				Flights: []domain.FlightOption{
					{Airline: "Thai Airways", FlightNumber: "TG316", DepartureTime: "08:30", ArrivalTime: "14:20", Price: 320, Currency: "USD"},
				},
				Hotels: []domain.HotelOption{
					{Name: "Riverside Palace", NightlyPrice: 2400, Currency: "INR", Rating: 4.5},
				},
			}
		},
	}
	offers := &mockOfferSource{
		offers: func(domain.User, []domain.Leg) []domain.SponsorshipOffer {
			return []domain.SponsorshipOffer{{Brand: "SkyBags", Description: "15% discount on all travel luggage."}}
		},
	}
	p := planner.NewPlanner(agg, offers, planner.NewQuotaTracker(), discardLogger()).
		WithClock(fixedClock())

	date := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	legs := legsFor([2]string{"DEL", "BKK"})
	legs[0].TravelDate = &date

	return p.PlanItinerary(context.Background(), testItinerary("Bangkok Trip", legs), domain.User{InstagramHandle: "@w"}).Report
}

func TestReport_ContainsAllBlocks(t *testing.T) {
	report := fullReport(t)

	assert.Contains(t, report, "TRAVEL PLAN: Bangkok Trip")
	assert.Contains(t, report, "Generated: 2025-11-15 09:30 UTC")
	assert.Contains(t, report, "LEG 1: DEL -> BKK (Bangkok)")
	assert.Contains(t, report, "Date: 2025-12-01")
	assert.Contains(t, report, "Visa (Thailand):")
	assert.Contains(t, report, "Policy: Visa on Arrival")
	assert.Contains(t, report, "Processing time: 1 day(s)")
	assert.Contains(t, report, "[required] Passport")
	assert.Contains(t, report, "- Thai Airways TG316  08:30 -> 14:20  320 USD")
	assert.Contains(t, report, "- Riverside Palace  2400 INR/night  (rating 4.5)")
	assert.Contains(t, report, "- SkyBags: 15% discount on all travel luggage.")
	assert.Contains(t, report, "Travel tips:")
	assert.NotContains(t, report, "[substitute data]", "no substitutes in a fully live plan")
	assert.NotContains(t, report, "NOTICE")
}

func TestReport_SubstituteMarkerAndNotice(t *testing.T) {
	visas, flights, hotels := happyMocks()
	quota := planner.NewQuotaTracker()
	quota.RecordQuotaSignal(planner.ServiceFlights)
	agg := newAggregator(visas, flights, hotels, quota)
	p := planner.NewPlanner(agg, noOffers(), quota, discardLogger()).WithClock(fixedClock())

	got := p.PlanItinerary(context.Background(), testItinerary("Trip", legsFor([2]string{"DEL", "BKK"})), domain.User{})

	assert.Contains(t, got.Report, "NOTICE: live data is temporarily unavailable for: flights.")
	assert.Contains(t, got.Report, "[substitute data]")

	// Only flight lines carry the marker; the hotel block stays clean.
	inHotels := false
	for _, line := range strings.Split(got.Report, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "Hotels:") {
			inHotels = true
			continue
		}
		if inHotels && !strings.HasPrefix(line, "    ") {
			inHotels = false
		}
		if inHotels {
			assert.NotContains(t, line, "[substitute data]")
		}
	}
}

func TestReport_MissingVisaLine(t *testing.T) {
	agg := &mockTripAggregator{
		planTrip: func(_ context.Context, origin, destination string, _ *time.Time) domain.TripPlan {
			return domain.TripPlan{
				OriginCode:      origin,
				DestinationCode: destination,
				Flights:         []domain.FlightOption{{Airline: "Echo Air"}},
				Hotels:          []domain.HotelOption{{Name: "Echo Hotel"}},
			}
		},
	}
	p := planner.NewPlanner(agg, noOffers(), planner.NewQuotaTracker(), discardLogger())

	got := p.PlanItinerary(context.Background(), testItinerary("Trip", legsFor([2]string{"DEL", "XYZ"})), domain.User{})

	assert.Contains(t, got.Report, "Visa information: unavailable")
}

func TestReport_CapsListedOptions(t *testing.T) {
	manyFlights := make([]domain.FlightOption, 6)
	for i := range manyFlights {
		manyFlights[i] = domain.FlightOption{Airline: "Carrier", FlightNumber: "FL" + string(rune('0'+i))}
	}
	agg := &mockTripAggregator{
		planTrip: func(_ context.Context, origin, destination string, _ *time.Time) domain.TripPlan {
			return domain.TripPlan{
				OriginCode:      origin,
				DestinationCode: destination,
				Flights:         manyFlights,
				Hotels:          []domain.HotelOption{{Name: "Echo Hotel"}},
			}
		},
	}
	p := planner.NewPlanner(agg, noOffers(), planner.NewQuotaTracker(), discardLogger())

	got := p.PlanItinerary(context.Background(), testItinerary("Trip", legsFor([2]string{"DEL", "BKK"})), domain.User{})

	require.Len(t, got.LegPlans[0].Plan.Flights, 6, "structured result keeps everything")
	assert.Equal(t, 3, strings.Count(got.Report, "- Carrier FL"), "report lists at most three")
}
