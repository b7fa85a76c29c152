package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomadscompass/backend/internal/domain"
	"github.com/nomadscompass/backend/internal/repo"
	"github.com/nomadscompass/backend/testutil"
)

func newTestCountryRepo(t *testing.T) repo.CountryRepo {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repo.NewCountryRepo(tx)
}

// countryFixture returns Thailand with two requirements, mirroring the
// seed data the planner tests rely on.
func countryFixture() domain.Country {
	return domain.Country{
		Name:               "Thailand",
		Code:               "THA",
		VisaPolicy:         "Visa on Arrival",
		ProcessingTimeDays: 1,
		Requirements: []domain.VisaRequirement{
			{DocumentName: "Passport", Description: "Valid for at least 6 months", IsMandatory: true},
			{DocumentName: "Return Flight Ticket", Description: "Proof of onward travel", IsMandatory: true},
		},
	}
}

func TestCountryRepo_Create(t *testing.T) {
	r := newTestCountryRepo(t)
	ctx := context.Background()

	got, err := r.Create(ctx, countryFixture())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "THA", got.Code)
	require.Len(t, got.Requirements, 2)
	assert.Equal(t, got.ID, got.Requirements[0].CountryID)
}

func TestCountryRepo_Create_DuplicateCode(t *testing.T) {
	r := newTestCountryRepo(t)
	ctx := context.Background()

	_, err := r.Create(ctx, countryFixture())
	require.NoError(t, err)

	dup := countryFixture()
	dup.Name = "Thailand Again"
	_, err = r.Create(ctx, dup)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCountryRepo_GetByCode(t *testing.T) {
	r := newTestCountryRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, countryFixture())
	require.NoError(t, err)

	got, err := r.GetByCode(ctx, "THA")

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Visa on Arrival", got.VisaPolicy)
	require.Len(t, got.Requirements, 2)
	// Requirements come back ordered by document name.
	assert.Equal(t, "Passport", got.Requirements[0].DocumentName)
}

func TestCountryRepo_GetByCode_NotFound(t *testing.T) {
	r := newTestCountryRepo(t)

	_, err := r.GetByCode(context.Background(), "ZZZ")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCountryRepo_Update(t *testing.T) {
	r := newTestCountryRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, countryFixture())
	require.NoError(t, err)

	created.VisaPolicy = "Visa Free"
	created.ProcessingTimeDays = 0

	got, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Visa Free", got.VisaPolicy)
	assert.Equal(t, 0, got.ProcessingTimeDays)
	assert.Len(t, got.Requirements, 2, "requirements untouched by country update")
}

func TestCountryRepo_Delete_CascadesRequirements(t *testing.T) {
	r := newTestCountryRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, countryFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByCode(ctx, "THA")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCountryRepo_Delete_NotFound(t *testing.T) {
	r := newTestCountryRepo(t)

	err := r.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
