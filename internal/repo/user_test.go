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

// newTestUserRepo opens a transaction against the test database and returns a
// UserRepo backed by it. The transaction is rolled back when the test
// finishes, giving free per-test isolation.
func newTestUserRepo(t *testing.T) repo.UserRepo {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repo.NewUserRepo(tx)
}

// userFixture returns a domain.User with sensible defaults for use in tests.
func userFixture() domain.User {
	return domain.User{
		Email:           "nomad@example.com",
		HashedPassword:  "$2a$10$fakedhashforrepotestsonly",
		FullName:        "Nomad Tester",
		InstagramHandle: "@nomad",
	}
}

func TestUserRepo_Create(t *testing.T) {
	r := newTestUserRepo(t)
	ctx := context.Background()

	input := userFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated")
	assert.Equal(t, input.Email, got.Email)
	assert.Equal(t, input.HashedPassword, got.HashedPassword)
	assert.Equal(t, input.InstagramHandle, got.InstagramHandle)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	r := newTestUserRepo(t)
	ctx := context.Background()

	_, err := r.Create(ctx, userFixture())
	require.NoError(t, err)

	_, err = r.Create(ctx, userFixture())

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	r := newTestUserRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, userFixture())
	require.NoError(t, err)

	got, err := r.GetByEmail(ctx, created.Email)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	r := newTestUserRepo(t)

	_, err := r.GetByEmail(context.Background(), "missing@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	r := newTestUserRepo(t)

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_Update(t *testing.T) {
	r := newTestUserRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, userFixture())
	require.NoError(t, err)

	created.FullName = "Renamed Nomad"
	created.InstagramHandle = ""

	got, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Renamed Nomad", got.FullName)
	assert.Empty(t, got.InstagramHandle)
}
