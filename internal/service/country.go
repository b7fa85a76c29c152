package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nomadscompass/backend/internal/domain"
	"github.com/nomadscompass/backend/internal/repo"
)

// CountryService implements business logic for the visa reference data.
type CountryService struct {
	countries repo.CountryRepo
}

// NewCountryService constructs a CountryService backed by the provided repo.
func NewCountryService(r repo.CountryRepo) *CountryService {
	return &CountryService{countries: r}
}

// Create validates and persists a new country with its visa requirements.
// Returns domain.ErrValidation for invalid input and domain.ErrConflict when
// the country code is already registered.
func (s *CountryService) Create(ctx context.Context, country domain.Country) (domain.Country, error) {
	if err := validateCountry(&country); err != nil {
		return domain.Country{}, err
	}
	result, err := s.countries.Create(ctx, country)
	if err != nil {
		return domain.Country{}, fmt.Errorf("service.CountryService.Create: %w", err)
	}
	return result, nil
}

// GetByCode returns a country and its requirements by ISO alpha-3 code.
// Returns domain.ErrNotFound if no such country exists.
func (s *CountryService) GetByCode(ctx context.Context, code string) (domain.Country, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	result, err := s.countries.GetByCode(ctx, code)
	if err != nil {
		return domain.Country{}, fmt.Errorf("service.CountryService.GetByCode: %w", err)
	}
	return result, nil
}

// Update validates and persists changes to an existing country.
// Requirements are replaced wholesale with the provided set.
func (s *CountryService) Update(ctx context.Context, country domain.Country) (domain.Country, error) {
	if err := validateCountry(&country); err != nil {
		return domain.Country{}, err
	}
	result, err := s.countries.Update(ctx, country)
	if err != nil {
		return domain.Country{}, fmt.Errorf("service.CountryService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a country by ID. Its requirements cascade in the database.
// Returns domain.ErrNotFound if the country does not exist.
func (s *CountryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.countries.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.CountryService.Delete: %w", err)
	}
	return nil
}

// validateCountry enforces rules common to Create and Update, normalizing
// the code to upper case in place.
//   - Name must be non-empty.
//   - Code must be a three-letter alphabetic ISO 3166-1 alpha-3 code.
//   - Every requirement must carry a document name.
func validateCountry(country *domain.Country) error {
	if strings.TrimSpace(country.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	country.Code = strings.ToUpper(strings.TrimSpace(country.Code))
	if !isAlphaCode(country.Code, 3) {
		return fmt.Errorf("%w: code must be a three-letter country code", domain.ErrValidation)
	}
	if country.ProcessingTimeDays < 0 {
		return fmt.Errorf("%w: processing_time_days must not be negative", domain.ErrValidation)
	}
	for _, req := range country.Requirements {
		if strings.TrimSpace(req.DocumentName) == "" {
			return fmt.Errorf("%w: requirement document_name is required", domain.ErrValidation)
		}
	}
	return nil
}

// isAlphaCode reports whether s is exactly n upper-case ASCII letters.
func isAlphaCode(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
