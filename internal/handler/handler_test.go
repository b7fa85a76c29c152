package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"

	"github.com/nomadscompass/backend/internal/domain"
	"github.com/nomadscompass/backend/internal/handler"
	"github.com/nomadscompass/backend/internal/middleware"
	"github.com/nomadscompass/backend/internal/service"
)

// ---- servicer mocks --------------------------------------------------------

type mockUserService struct {
	register      func(ctx context.Context, in service.RegisterInput) (domain.User, error)
	authenticate  func(ctx context.Context, email, password string) (string, domain.User, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.User, error)
	updateProfile func(ctx context.Context, id uuid.UUID, in service.UpdateProfileInput) (domain.User, error)
}

func (m *mockUserService) Register(ctx context.Context, in service.RegisterInput) (domain.User, error) {
	return m.register(ctx, in)
}
func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (string, domain.User, error) {
	return m.authenticate(ctx, email, password)
}
func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserService) UpdateProfile(ctx context.Context, id uuid.UUID, in service.UpdateProfileInput) (domain.User, error) {
	return m.updateProfile(ctx, id, in)
}

var _ handler.UserServicer = (*mockUserService)(nil)

type mockCountryService struct {
	create    func(ctx context.Context, country domain.Country) (domain.Country, error)
	getByCode func(ctx context.Context, code string) (domain.Country, error)
	update    func(ctx context.Context, country domain.Country) (domain.Country, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCountryService) Create(ctx context.Context, country domain.Country) (domain.Country, error) {
	return m.create(ctx, country)
}
func (m *mockCountryService) GetByCode(ctx context.Context, code string) (domain.Country, error) {
	return m.getByCode(ctx, code)
}
func (m *mockCountryService) Update(ctx context.Context, country domain.Country) (domain.Country, error) {
	return m.update(ctx, country)
}
func (m *mockCountryService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.CountryServicer = (*mockCountryService)(nil)

type mockItineraryService struct {
	create      func(ctx context.Context, ownerID uuid.UUID, name, notes string) (domain.Itinerary, error)
	getByID     func(ctx context.Context, ownerID, id uuid.UUID) (domain.Itinerary, error)
	listByOwner func(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
	delete      func(ctx context.Context, ownerID, id uuid.UUID) error
	addLeg      func(ctx context.Context, ownerID uuid.UUID, leg domain.Leg) (domain.Leg, error)
	listLegs    func(ctx context.Context, ownerID, itineraryID uuid.UUID) ([]domain.Leg, error)
	deleteLeg   func(ctx context.Context, ownerID, itineraryID, legID uuid.UUID) error
}

func (m *mockItineraryService) Create(ctx context.Context, ownerID uuid.UUID, name, notes string) (domain.Itinerary, error) {
	return m.create(ctx, ownerID, name, notes)
}
func (m *mockItineraryService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Itinerary, error) {
	return m.getByID(ctx, ownerID, id)
}
func (m *mockItineraryService) ListByOwner(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	return m.listByOwner(ctx, ownerID, p)
}
func (m *mockItineraryService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.delete(ctx, ownerID, id)
}
func (m *mockItineraryService) AddLeg(ctx context.Context, ownerID uuid.UUID, leg domain.Leg) (domain.Leg, error) {
	return m.addLeg(ctx, ownerID, leg)
}
func (m *mockItineraryService) ListLegs(ctx context.Context, ownerID, itineraryID uuid.UUID) ([]domain.Leg, error) {
	return m.listLegs(ctx, ownerID, itineraryID)
}
func (m *mockItineraryService) DeleteLeg(ctx context.Context, ownerID, itineraryID, legID uuid.UUID) error {
	return m.deleteLeg(ctx, ownerID, itineraryID, legID)
}

var _ handler.ItineraryServicer = (*mockItineraryService)(nil)

type mockPlanner struct {
	planItinerary func(ctx context.Context, itinerary domain.Itinerary, user domain.User) domain.FullPlan
	quotaStatus   func() map[string]domain.QuotaSnapshot
	resetQuota    func(service string)
}

func (m *mockPlanner) PlanItinerary(ctx context.Context, itinerary domain.Itinerary, user domain.User) domain.FullPlan {
	return m.planItinerary(ctx, itinerary, user)
}
func (m *mockPlanner) QuotaStatus() map[string]domain.QuotaSnapshot {
	return m.quotaStatus()
}
func (m *mockPlanner) ResetQuota(service string) {
	m.resetQuota(service)
}

var _ handler.ItineraryPlanner = (*mockPlanner)(nil)

type mockAggregator struct {
	planTrip func(ctx context.Context, origin, destination string, date *time.Time) domain.TripPlan
}

func (m *mockAggregator) PlanTrip(ctx context.Context, origin, destination string, date *time.Time) domain.TripPlan {
	return m.planTrip(ctx, origin, destination, date)
}

var _ handler.LegAggregator = (*mockAggregator)(nil)

// ---- harness ---------------------------------------------------------------

// stubVerifier accepts the literal token "good" for a fixed user ID.
type stubVerifier struct {
	userID uuid.UUID
}

func (v *stubVerifier) Verify(token string) (uuid.UUID, error) {
	if token != "good" {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return v.userID, nil
}

// deps bundles the mocks behind a Server under test.
type deps struct {
	users       *mockUserService
	countries   *mockCountryService
	itineraries *mockItineraryService
	planner     *mockPlanner
	aggregator  *mockAggregator
	userID      uuid.UUID
}

// newTestServer wires a Server with the given mocks into a router guarded by
// a stub authenticator accepting "Bearer good".
func newTestServer(d *deps) http.Handler {
	if d.userID == uuid.Nil {
		d.userID = uuid.New()
	}
	srv := handler.NewServer(d.users, d.countries, d.itineraries, d.planner, d.aggregator)
	return srv.Routes(middleware.NewAuthenticator(&stubVerifier{userID: d.userID}))
}

// doRequest runs one request through the router and returns the recorder.
func doRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// authed marks a request as coming from the stub-verified user.
func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer good")
	return req
}
