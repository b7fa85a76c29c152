package planner

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/nomadscompass/backend/internal/domain"
)

// TripAggregator produces the plan for one leg. *Aggregator satisfies it;
// planner tests inject stubs to exercise ordering and failure isolation.
type TripAggregator interface {
	PlanTrip(ctx context.Context, origin, destination string, date *time.Time) domain.TripPlan
}

// OfferSource resolves sponsorship offers. *sponsorship.Catalog satisfies it.
type OfferSource interface {
	Offers(user domain.User, legs []domain.Leg) []domain.SponsorshipOffer
}

// Planner produces a FullPlan for a whole itinerary: concurrent per-leg
// aggregation, sponsorship resolution, and the rendered report.
type Planner struct {
	agg    TripAggregator
	offers OfferSource
	quota  *QuotaTracker
	log    *slog.Logger
	now    func() time.Time
}

// NewPlanner constructs a Planner. quota must be the same tracker instance
// the aggregator records into, so the degraded-services notice matches what
// actually happened during aggregation.
func NewPlanner(agg TripAggregator, offers OfferSource, quota *QuotaTracker, log *slog.Logger) *Planner {
	return &Planner{
		agg:    agg,
		offers: offers,
		quota:  quota,
		log:    log,
		now:    time.Now,
	}
}

// WithClock overrides the timestamp source, used by tests that assert on
// rendered output. Returns the planner for chaining at construction.
func (p *Planner) WithClock(now func() time.Time) *Planner {
	p.now = now
	return p
}

// PlanItinerary aggregates a plan for every leg of the itinerary
// concurrently and assembles the FullPlan.
//
// The result always has exactly one leg-plan per input leg, in input order:
// each goroutine writes only its own index, so assembly order is structural,
// not a property of completion timing. A panic inside one leg's aggregation
// degrades that leg alone to an error-substitute plan; siblings are
// unaffected. The sponsorship computation runs concurrently with the legs
// and degrades to an empty offer list on failure. Nothing here fails the
// request.
func (p *Planner) PlanItinerary(ctx context.Context, itinerary domain.Itinerary, user domain.User) domain.FullPlan {
	plan := domain.FullPlan{
		ItineraryID:   itinerary.ID,
		ItineraryName: itinerary.Name,
		GeneratedAt:   p.now().UTC(),
		LegPlans:      []domain.LegPlan{},
		Offers:        []domain.SponsorshipOffer{},
	}

	if len(itinerary.Legs) == 0 {
		plan.Report = renderReport(plan)
		return plan
	}

	plans := make([]domain.TripPlan, len(itinerary.Legs))

	var wg sync.WaitGroup
	for i, leg := range itinerary.Legs {
		i, leg := i, leg
		wg.Add(1)
		go func() {
			defer wg.Done()
			plans[i] = p.planLeg(ctx, leg)
		}()
	}

	offersCh := make(chan []domain.SponsorshipOffer, 1)
	go func() {
		offersCh <- p.resolveOffers(ctx, user, itinerary.Legs)
	}()

	wg.Wait()

	plan.LegPlans = make([]domain.LegPlan, len(itinerary.Legs))
	for i, leg := range itinerary.Legs {
		plan.LegPlans[i] = domain.LegPlan{Leg: leg, Plan: plans[i]}
	}
	plan.Offers = <-offersCh
	plan.Degraded = p.degradedServices()
	plan.Report = renderReport(plan)

	p.log.InfoContext(ctx, "itinerary plan generated",
		"itinerary_id", itinerary.ID,
		"legs", len(plan.LegPlans),
		"offers", len(plan.Offers),
		"degraded_services", plan.Degraded,
	)
	return plan
}

// planLeg runs one leg's aggregation, converting a panic into an
// error-substitute plan for that leg only. PlanTrip is documented never to
// fail, but a single leg taking down its siblings would be a far worse bug
// than serving one substituted leg.
func (p *Planner) planLeg(ctx context.Context, leg domain.Leg) (plan domain.TripPlan) {
	defer func() {
		if r := recover(); r != nil {
			p.log.ErrorContext(ctx, "leg aggregation panicked, substituting leg plan",
				"origin", leg.OriginCode, "destination", leg.DestinationCode, "panic", r)
			plan = domain.TripPlan{
				OriginCode:      leg.OriginCode,
				DestinationCode: leg.DestinationCode,
				Flights:         substituteFlights(leg.OriginCode, leg.DestinationCode, leg.TravelDate),
				Hotels:          substituteHotelOptions(leg.DestinationCode, ""),
			}
		}
	}()
	return p.agg.PlanTrip(ctx, leg.OriginCode, leg.DestinationCode, leg.TravelDate)
}

// resolveOffers computes sponsorship offers, degrading to an empty list if
// the catalog misbehaves.
func (p *Planner) resolveOffers(ctx context.Context, user domain.User, legs []domain.Leg) (offers []domain.SponsorshipOffer) {
	defer func() {
		if r := recover(); r != nil {
			p.log.ErrorContext(ctx, "sponsorship resolution panicked, continuing without offers", "panic", r)
			offers = []domain.SponsorshipOffer{}
		}
	}()
	offers = p.offers.Offers(user, legs)
	if offers == nil {
		offers = []domain.SponsorshipOffer{}
	}
	return offers
}

// degradedServices lists the services currently in substitute mode, sorted
// for stable report output.
func (p *Planner) degradedServices() []string {
	var names []string
	for name, snap := range p.quota.Status() {
		if snap.Substituting {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// QuotaStatus exposes the tracker snapshot for the admin surface.
func (p *Planner) QuotaStatus() map[string]domain.QuotaSnapshot {
	return p.quota.Status()
}

// ResetQuota clears quota state for one service, or for all services when
// service is empty.
func (p *Planner) ResetQuota(service string) {
	if service == "" {
		p.quota.ResetAll()
		return
	}
	p.quota.Reset(service)
}
