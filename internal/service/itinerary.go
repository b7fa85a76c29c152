package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nomadscompass/backend/internal/domain"
	"github.com/nomadscompass/backend/internal/repo"
)

// ItineraryService implements business logic for itineraries and their legs.
// Every operation is scoped to the owning user: another user's itinerary is
// indistinguishable from a missing one.
type ItineraryService struct {
	itineraries repo.ItineraryRepo
}

// NewItineraryService constructs an ItineraryService backed by the provided repo.
func NewItineraryService(r repo.ItineraryRepo) *ItineraryService {
	return &ItineraryService{itineraries: r}
}

// Create validates and persists a new itinerary for the owner.
// Returns domain.ErrValidation if input violates business rules.
func (s *ItineraryService) Create(ctx context.Context, ownerID uuid.UUID, name, notes string) (domain.Itinerary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Itinerary{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	result, err := s.itineraries.Create(ctx, domain.Itinerary{
		OwnerID: ownerID,
		Name:    name,
		Notes:   strings.TrimSpace(notes),
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single itinerary with its legs, scoped to the owner.
// Returns domain.ErrNotFound when the itinerary does not exist or belongs to
// someone else.
func (s *ItineraryService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Itinerary, error) {
	itinerary, err := s.itineraries.GetByID(ctx, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.GetByID: %w", err)
	}
	if itinerary.OwnerID != ownerID {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.GetByID: %w", domain.ErrNotFound)
	}
	return itinerary, nil
}

// ListByOwner returns a page of the owner's itineraries ordered by creation
// time descending, plus the total count. Always returns a non-nil slice.
func (s *ItineraryService) ListByOwner(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	itineraries, total, err := s.itineraries.ListByOwnerPaged(ctx, ownerID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ItineraryService.ListByOwner: %w", err)
	}
	if itineraries == nil {
		itineraries = []domain.Itinerary{}
	}
	return itineraries, total, nil
}

// Delete removes an itinerary and its legs, scoped to the owner.
// Returns domain.ErrNotFound when it does not exist or belongs to someone else.
func (s *ItineraryService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.itineraries.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	return nil
}

// AddLeg validates and appends a leg to the owner's itinerary. Position is
// assigned by the repo as the next free slot.
// Returns domain.ErrValidation for invalid codes and domain.ErrNotFound when
// the itinerary is missing or owned by someone else.
func (s *ItineraryService) AddLeg(ctx context.Context, ownerID uuid.UUID, leg domain.Leg) (domain.Leg, error) {
	if _, err := s.GetByID(ctx, ownerID, leg.ItineraryID); err != nil {
		return domain.Leg{}, err
	}

	leg.OriginCode = strings.ToUpper(strings.TrimSpace(leg.OriginCode))
	leg.DestinationCode = strings.ToUpper(strings.TrimSpace(leg.DestinationCode))
	if !isAlphaCode(leg.OriginCode, 3) {
		return domain.Leg{}, fmt.Errorf("%w: origin_code must be a three-letter airport code", domain.ErrValidation)
	}
	if !isAlphaCode(leg.DestinationCode, 3) {
		return domain.Leg{}, fmt.Errorf("%w: destination_code must be a three-letter airport code", domain.ErrValidation)
	}
	if leg.OriginCode == leg.DestinationCode {
		return domain.Leg{}, fmt.Errorf("%w: origin and destination must differ", domain.ErrValidation)
	}

	result, err := s.itineraries.AddLeg(ctx, leg)
	if err != nil {
		return domain.Leg{}, fmt.Errorf("service.ItineraryService.AddLeg: %w", err)
	}
	return result, nil
}

// ListLegs returns the itinerary's legs in position order, scoped to the
// owner. Always returns a non-nil slice.
func (s *ItineraryService) ListLegs(ctx context.Context, ownerID, itineraryID uuid.UUID) ([]domain.Leg, error) {
	if _, err := s.GetByID(ctx, ownerID, itineraryID); err != nil {
		return nil, err
	}
	legs, err := s.itineraries.ListLegs(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListLegs: %w", err)
	}
	return legs, nil
}

// DeleteLeg removes one leg from the owner's itinerary.
// Returns domain.ErrNotFound when the itinerary or leg is missing, or the
// itinerary belongs to someone else.
func (s *ItineraryService) DeleteLeg(ctx context.Context, ownerID, itineraryID, legID uuid.UUID) error {
	if _, err := s.GetByID(ctx, ownerID, itineraryID); err != nil {
		return err
	}
	if err := s.itineraries.DeleteLeg(ctx, itineraryID, legID); err != nil {
		return fmt.Errorf("service.ItineraryService.DeleteLeg: %w", err)
	}
	return nil
}
