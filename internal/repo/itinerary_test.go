package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomadscompass/backend/internal/domain"
	"github.com/nomadscompass/backend/internal/repo"
	"github.com/nomadscompass/backend/testutil"
)

// newTestItineraryRepo returns an ItineraryRepo and a UserRepo sharing one
// rolled-back transaction, plus the owner user all fixtures hang off.
func newTestItineraryRepo(t *testing.T) (repo.ItineraryRepo, domain.User) {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	owner, err := repo.NewUserRepo(tx).Create(context.Background(), userFixture())
	require.NoError(t, err, "create owner")

	return repo.NewItineraryRepo(tx), owner
}

func itineraryFixture(ownerID uuid.UUID) domain.Itinerary {
	return domain.Itinerary{
		OwnerID: ownerID,
		Name:    "Bangkok Trip",
		Notes:   "December escape",
	}
}

func TestItineraryRepo_Create(t *testing.T) {
	r, owner := newTestItineraryRepo(t)
	ctx := context.Background()

	got, err := r.Create(ctx, itineraryFixture(owner.ID))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, owner.ID, got.OwnerID)
	assert.NotNil(t, got.Legs, "Legs should be an empty slice, not nil")
	assert.Empty(t, got.Legs)
}

func TestItineraryRepo_GetByID_LoadsLegsInOrder(t *testing.T) {
	r, owner := newTestItineraryRepo(t)
	ctx := context.Background()

	it, err := r.Create(ctx, itineraryFixture(owner.ID))
	require.NoError(t, err)

	date := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	for _, route := range [][2]string{{"DEL", "BKK"}, {"BKK", "SIN"}, {"SIN", "DEL"}} {
		_, err := r.AddLeg(ctx, domain.Leg{
			ItineraryID:     it.ID,
			OriginCode:      route[0],
			DestinationCode: route[1],
			TravelDate:      &date,
		})
		require.NoError(t, err)
	}

	got, err := r.GetByID(ctx, it.ID)

	require.NoError(t, err)
	require.Len(t, got.Legs, 3)
	assert.Equal(t, "BKK", got.Legs[0].DestinationCode)
	assert.Equal(t, "SIN", got.Legs[1].DestinationCode)
	assert.Equal(t, "DEL", got.Legs[2].DestinationCode)
	assert.Equal(t, []int{0, 1, 2}, []int{got.Legs[0].Position, got.Legs[1].Position, got.Legs[2].Position})
}

func TestItineraryRepo_GetByID_NotFound(t *testing.T) {
	r, _ := newTestItineraryRepo(t)

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItineraryRepo_ListByOwnerPaged(t *testing.T) {
	r, owner := newTestItineraryRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := r.Create(ctx, itineraryFixture(owner.ID))
		require.NoError(t, err)
	}

	page := domain.PaginationParams{Page: 1, Limit: 2}
	got, total, err := r.ListByOwnerPaged(ctx, owner.ID, page)

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, got, 2)
}

func TestItineraryRepo_AddLeg_NilTravelDate(t *testing.T) {
	r, owner := newTestItineraryRepo(t)
	ctx := context.Background()

	it, err := r.Create(ctx, itineraryFixture(owner.ID))
	require.NoError(t, err)

	got, err := r.AddLeg(ctx, domain.Leg{
		ItineraryID:     it.ID,
		OriginCode:      "DEL",
		DestinationCode: "BKK",
	})

	require.NoError(t, err)
	assert.Nil(t, got.TravelDate, "TravelDate should be nil when not provided")
	assert.Equal(t, 0, got.Position)
}

func TestItineraryRepo_DeleteLeg_ScopedToItinerary(t *testing.T) {
	r, owner := newTestItineraryRepo(t)
	ctx := context.Background()

	first, err := r.Create(ctx, itineraryFixture(owner.ID))
	require.NoError(t, err)
	second, err := r.Create(ctx, itineraryFixture(owner.ID))
	require.NoError(t, err)

	leg, err := r.AddLeg(ctx, domain.Leg{ItineraryID: first.ID, OriginCode: "DEL", DestinationCode: "BKK"})
	require.NoError(t, err)

	// Deleting through the wrong itinerary must not touch the leg.
	err = r.DeleteLeg(ctx, second.ID, leg.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, r.DeleteLeg(ctx, first.ID, leg.ID))

	legs, err := r.ListLegs(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, legs)
}

func TestItineraryRepo_Delete_CascadesLegs(t *testing.T) {
	r, owner := newTestItineraryRepo(t)
	ctx := context.Background()

	it, err := r.Create(ctx, itineraryFixture(owner.ID))
	require.NoError(t, err)
	_, err = r.AddLeg(ctx, domain.Leg{ItineraryID: it.ID, OriginCode: "DEL", DestinationCode: "BKK"})
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, it.ID))

	_, err = r.GetByID(ctx, it.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
