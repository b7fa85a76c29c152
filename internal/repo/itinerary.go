package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nomadscompass/backend/internal/domain"
)

// ItineraryRepo defines the persistence operations for itineraries and their legs.
type ItineraryRepo interface {
	// Create inserts a new itinerary and returns the persisted record.
	Create(ctx context.Context, itinerary domain.Itinerary) (domain.Itinerary, error)

	// GetByID retrieves an itinerary by primary key with its legs loaded in
	// position order. Returns domain.ErrNotFound if no such itinerary exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)

	// ListByOwnerPaged returns one page of the owner's itineraries (legs not
	// loaded) ordered by created_at descending, plus the total count.
	ListByOwnerPaged(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error)

	// Delete removes an itinerary by ID; legs cascade.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddLeg appends a leg to an itinerary at the next free position.
	AddLeg(ctx context.Context, leg domain.Leg) (domain.Leg, error)

	// ListLegs returns all legs for an itinerary ordered by position.
	ListLegs(ctx context.Context, itineraryID uuid.UUID) ([]domain.Leg, error)

	// DeleteLeg removes a leg by ID, scoped to the given itinerary.
	// Returns domain.ErrNotFound if the leg does not exist under that itinerary.
	DeleteLeg(ctx context.Context, itineraryID, legID uuid.UUID) error
}

// pgItineraryRepo is the Postgres implementation of ItineraryRepo.
type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

const itineraryColumns = `id, owner_id, name, notes, created_at, updated_at`
const legColumns = `id, itinerary_id, origin_code, destination_code, travel_date, position, created_at`

// Create inserts a new itinerary row and returns the full persisted record.
func (r *pgItineraryRepo) Create(ctx context.Context, itinerary domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		INSERT INTO itineraries (owner_id, name, notes)
		VALUES (@owner_id, @name, @notes)
		RETURNING ` + itineraryColumns

	args := pgx.NamedArgs{
		"owner_id": itinerary.OwnerID,
		"name":     itinerary.Name,
		"notes":    itinerary.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	result.Legs = []domain.Leg{}
	return result, nil
}

// GetByID retrieves an itinerary with its legs in position order.
func (r *pgItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	const q = `SELECT ` + itineraryColumns + ` FROM itineraries WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}

	result.Legs, err = r.ListLegs(ctx, result.ID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByOwnerPaged returns one page of the owner's itineraries plus the total count.
func (r *pgItineraryRepo) ListByOwnerPaged(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	const countQ = `SELECT count(*) FROM itineraries WHERE owner_id = @owner_id`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"owner_id": ownerID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListByOwnerPaged: count: %w", err)
	}

	const q = `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		WHERE owner_id = @owner_id
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"owner_id": ownerID,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListByOwnerPaged: %w", err)
	}
	defer rows.Close()

	var itineraries []domain.Itinerary
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListByOwnerPaged: scan: %w", err)
		}
		itineraries = append(itineraries, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListByOwnerPaged: rows: %w", err)
	}

	return itineraries, total, nil
}

// Delete removes an itinerary by primary key.
func (r *pgItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM itineraries WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// AddLeg inserts a leg at the next free position for the itinerary.
// Position assignment happens in SQL so concurrent inserts cannot both
// compute the same position outside the database.
func (r *pgItineraryRepo) AddLeg(ctx context.Context, leg domain.Leg) (domain.Leg, error) {
	const q = `
		INSERT INTO legs (itinerary_id, origin_code, destination_code, travel_date, position)
		VALUES (
			@itinerary_id, @origin_code, @destination_code, @travel_date,
			(SELECT coalesce(max(position), -1) + 1 FROM legs WHERE itinerary_id = @itinerary_id)
		)
		RETURNING ` + legColumns

	args := pgx.NamedArgs{
		"itinerary_id":     leg.ItineraryID,
		"origin_code":      leg.OriginCode,
		"destination_code": leg.DestinationCode,
		"travel_date":      leg.TravelDate, // nil becomes NULL
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanLeg(row)
	if err != nil {
		return domain.Leg{}, fmt.Errorf("repo.ItineraryRepo.AddLeg: %w", err)
	}
	return result, nil
}

// ListLegs returns all legs for an itinerary ordered by position ascending.
// Always returns a non-nil slice so callers can safely range over it.
func (r *pgItineraryRepo) ListLegs(ctx context.Context, itineraryID uuid.UUID) ([]domain.Leg, error) {
	const q = `
		SELECT ` + legColumns + `
		FROM legs
		WHERE itinerary_id = @itinerary_id
		ORDER BY position`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"itinerary_id": itineraryID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListLegs: %w", err)
	}
	defer rows.Close()

	legs := []domain.Leg{}
	for rows.Next() {
		leg, err := scanLeg(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ItineraryRepo.ListLegs: scan: %w", err)
		}
		legs = append(legs, leg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListLegs: rows: %w", err)
	}

	return legs, nil
}

// DeleteLeg removes a leg by ID, scoped to the given itinerary.
func (r *pgItineraryRepo) DeleteLeg(ctx context.Context, itineraryID, legID uuid.UUID) error {
	const q = `DELETE FROM legs WHERE id = @id AND itinerary_id = @itinerary_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": legID, "itinerary_id": itineraryID})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.DeleteLeg: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.DeleteLeg: %w", domain.ErrNotFound)
	}
	return nil
}

// scanItinerary maps a single database row into a domain.Itinerary (without legs).
func scanItinerary(s scanner) (domain.Itinerary, error) {
	var (
		it      domain.Itinerary
		id      pgtype.UUID
		ownerID pgtype.UUID
	)

	err := s.Scan(&id, &ownerID, &it.Name, &it.Notes, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Itinerary{}, domain.ErrNotFound
		}
		return domain.Itinerary{}, err
	}

	it.ID = uuid.UUID(id.Bytes)
	it.OwnerID = uuid.UUID(ownerID.Bytes)
	return it, nil
}

// scanLeg maps a single database row into a domain.Leg.
// It handles the UUID and nullable travel_date conversions.
func scanLeg(s scanner) (domain.Leg, error) {
	var (
		l           domain.Leg
		id          pgtype.UUID
		itineraryID pgtype.UUID
		travelDate  pgtype.Date
	)

	err := s.Scan(&id, &itineraryID, &l.OriginCode, &l.DestinationCode, &travelDate, &l.Position, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Leg{}, domain.ErrNotFound
		}
		return domain.Leg{}, err
	}

	l.ID = uuid.UUID(id.Bytes)
	l.ItineraryID = uuid.UUID(itineraryID.Bytes)
	if travelDate.Valid {
		td := travelDate.Time
		l.TravelDate = &td
	}

	return l, nil
}
