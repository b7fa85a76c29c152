// Package main seeds the visa reference data. It is idempotent: countries
// that already exist are left untouched, so it is safe to run on every
// deploy.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/nomadscompass/backend/internal/config"
	"github.com/nomadscompass/backend/internal/domain"
	"github.com/nomadscompass/backend/internal/repo"
	"github.com/nomadscompass/backend/migrations"
)

// seedCountries is the built-in visa reference set.
var seedCountries = []domain.Country{
	{
		Name:               "Thailand",
		Code:               "THA",
		VisaPolicy:         "Visa on Arrival",
		ProcessingTimeDays: 1,
		Requirements: []domain.VisaRequirement{
			{DocumentName: "Passport", Description: "Valid for at least 6 months", IsMandatory: true},
			{DocumentName: "Return Flight Ticket", Description: "Proof of onward travel within 15 days", IsMandatory: true},
			{DocumentName: "Proof of Accommodation", Description: "Hotel bookings for the duration of stay", IsMandatory: true},
			{DocumentName: "Passport Size Photo", Description: "4x6 cm, white background, matte finish", IsMandatory: true},
			{DocumentName: "Proof of Funds", Description: "10,000 THB per person or 20,000 THB per family", IsMandatory: true},
		},
	},
	{
		Name:               "Singapore",
		Code:               "SGP",
		VisaPolicy:         "e-Visa",
		ProcessingTimeDays: 3,
		Requirements: []domain.VisaRequirement{
			{DocumentName: "Passport", Description: "Valid for at least 6 months", IsMandatory: true},
			{DocumentName: "Return Flight Ticket", Description: "Proof of onward travel", IsMandatory: true},
			{DocumentName: "Passport Size Photo", Description: "35x45 mm, white background", IsMandatory: true},
		},
	},
	{
		Name:               "Vietnam",
		Code:               "VNM",
		VisaPolicy:         "e-Visa",
		ProcessingTimeDays: 3,
		Requirements: []domain.VisaRequirement{
			{DocumentName: "Passport", Description: "Valid for at least 6 months", IsMandatory: true},
			{DocumentName: "Passport Size Photo", Description: "4x6 cm, recent", IsMandatory: true},
		},
	},
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := run(ctx, cfg.DatabaseURL); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seed complete")
}

func run(ctx context.Context, databaseURL string) error {
	if err := migrate(ctx, databaseURL); err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	countries := repo.NewCountryRepo(pool)
	for _, country := range seedCountries {
		if _, err := countries.GetByCode(ctx, country.Code); err == nil {
			slog.Info("country already seeded", "code", country.Code)
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if _, err := countries.Create(ctx, country); err != nil {
			return err
		}
		slog.Info("seeded country", "code", country.Code, "requirements", len(country.Requirements))
	}
	return nil
}

// migrate brings the schema up to date so seeding works on a fresh database.
func migrate(ctx context.Context, databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}
