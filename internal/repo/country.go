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

// CountryRepo defines the persistence operations for visa reference data.
// A country always travels with its visa requirements; lookups eagerly load
// them because every consumer (visa endpoints, the planner) needs the full set.
type CountryRepo interface {
	// Create inserts a country with its requirements and returns the
	// persisted record. Returns domain.ErrConflict when the name or code
	// already exists.
	Create(ctx context.Context, country domain.Country) (domain.Country, error)

	// GetByCode retrieves a country by its 3-letter code, requirements included.
	// Returns domain.ErrNotFound if no such country exists.
	GetByCode(ctx context.Context, code string) (domain.Country, error)

	// Update overwrites the mutable fields of a country (not its requirements)
	// and returns the updated record with requirements loaded.
	Update(ctx context.Context, country domain.Country) (domain.Country, error)

	// Delete removes a country by ID; requirements cascade.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgCountryRepo is the Postgres implementation of CountryRepo.
type pgCountryRepo struct {
	db db
}

// NewCountryRepo constructs a CountryRepo backed by the provided db connection.
func NewCountryRepo(db db) CountryRepo {
	return &pgCountryRepo{db: db}
}

const countryColumns = `id, name, code, visa_policy, processing_time_days, created_at, updated_at`

// Create inserts the country row followed by one row per requirement.
func (r *pgCountryRepo) Create(ctx context.Context, country domain.Country) (domain.Country, error) {
	const q = `
		INSERT INTO countries (name, code, visa_policy, processing_time_days)
		VALUES (@name, @code, @visa_policy, @processing_time_days)
		RETURNING ` + countryColumns

	args := pgx.NamedArgs{
		"name":                 country.Name,
		"code":                 country.Code,
		"visa_policy":          country.VisaPolicy,
		"processing_time_days": country.ProcessingTimeDays,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCountry(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Country{}, fmt.Errorf("repo.CountryRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Country{}, fmt.Errorf("repo.CountryRepo.Create: %w", err)
	}

	for _, req := range country.Requirements {
		created, err := r.insertRequirement(ctx, result.ID, req)
		if err != nil {
			return domain.Country{}, fmt.Errorf("repo.CountryRepo.Create: requirement: %w", err)
		}
		result.Requirements = append(result.Requirements, created)
	}

	return result, nil
}

// GetByCode retrieves a country and its requirements by 3-letter code.
func (r *pgCountryRepo) GetByCode(ctx context.Context, code string) (domain.Country, error) {
	const q = `SELECT ` + countryColumns + ` FROM countries WHERE code = @code`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"code": code})
	result, err := scanCountry(row)
	if err != nil {
		return domain.Country{}, fmt.Errorf("repo.CountryRepo.GetByCode: %w", err)
	}

	result.Requirements, err = r.listRequirements(ctx, result.ID)
	if err != nil {
		return domain.Country{}, fmt.Errorf("repo.CountryRepo.GetByCode: %w", err)
	}
	return result, nil
}

// Update overwrites the country's own fields and reloads its requirements.
func (r *pgCountryRepo) Update(ctx context.Context, country domain.Country) (domain.Country, error) {
	const q = `
		UPDATE countries
		SET name                 = @name,
		    code                 = @code,
		    visa_policy          = @visa_policy,
		    processing_time_days = @processing_time_days,
		    updated_at           = now()
		WHERE id = @id
		RETURNING ` + countryColumns

	args := pgx.NamedArgs{
		"id":                   country.ID,
		"name":                 country.Name,
		"code":                 country.Code,
		"visa_policy":          country.VisaPolicy,
		"processing_time_days": country.ProcessingTimeDays,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCountry(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Country{}, fmt.Errorf("repo.CountryRepo.Update: %w", domain.ErrConflict)
		}
		return domain.Country{}, fmt.Errorf("repo.CountryRepo.Update: %w", err)
	}

	result.Requirements, err = r.listRequirements(ctx, result.ID)
	if err != nil {
		return domain.Country{}, fmt.Errorf("repo.CountryRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a country by primary key.
func (r *pgCountryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM countries WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.CountryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CountryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// insertRequirement inserts one visa requirement row for the given country.
func (r *pgCountryRepo) insertRequirement(ctx context.Context, countryID uuid.UUID, req domain.VisaRequirement) (domain.VisaRequirement, error) {
	const q = `
		INSERT INTO visa_requirements (country_id, document_name, description, is_mandatory)
		VALUES (@country_id, @document_name, @description, @is_mandatory)
		RETURNING id, country_id, document_name, description, is_mandatory`

	args := pgx.NamedArgs{
		"country_id":    countryID,
		"document_name": req.DocumentName,
		"description":   req.Description,
		"is_mandatory":  req.IsMandatory,
	}

	row := r.db.QueryRow(ctx, q, args)
	return scanRequirement(row)
}

// listRequirements returns the requirements for a country in insertion order.
func (r *pgCountryRepo) listRequirements(ctx context.Context, countryID uuid.UUID) ([]domain.VisaRequirement, error) {
	const q = `
		SELECT id, country_id, document_name, description, is_mandatory
		FROM visa_requirements
		WHERE country_id = @country_id
		ORDER BY document_name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"country_id": countryID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.VisaRequirement
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// scanCountry maps a single database row into a domain.Country.
// The char(3) code column is space-padded by Postgres only if shorter than 3,
// which inputs never are, so no trimming is needed.
func scanCountry(s scanner) (domain.Country, error) {
	var (
		c  domain.Country
		id pgtype.UUID
	)

	err := s.Scan(&id, &c.Name, &c.Code, &c.VisaPolicy, &c.ProcessingTimeDays, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Country{}, domain.ErrNotFound
		}
		return domain.Country{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	return c, nil
}

// scanRequirement maps a single database row into a domain.VisaRequirement.
func scanRequirement(s scanner) (domain.VisaRequirement, error) {
	var (
		req       domain.VisaRequirement
		id        pgtype.UUID
		countryID pgtype.UUID
	)

	err := s.Scan(&id, &countryID, &req.DocumentName, &req.Description, &req.IsMandatory)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.VisaRequirement{}, domain.ErrNotFound
		}
		return domain.VisaRequirement{}, err
	}

	req.ID = uuid.UUID(id.Bytes)
	req.CountryID = uuid.UUID(countryID.Bytes)
	return req, nil
}
