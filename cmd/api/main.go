// Package main is the entry point for the Nomad's Compass API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"

	"github.com/nomadscompass/backend/internal/auth"
	"github.com/nomadscompass/backend/internal/config"
	"github.com/nomadscompass/backend/internal/flightapi"
	"github.com/nomadscompass/backend/internal/handler"
	"github.com/nomadscompass/backend/internal/hotelapi"
	"github.com/nomadscompass/backend/internal/middleware"
	"github.com/nomadscompass/backend/internal/planner"
	"github.com/nomadscompass/backend/internal/repo"
	"github.com/nomadscompass/backend/internal/service"
	"github.com/nomadscompass/backend/internal/sponsorship"
	"github.com/nomadscompass/backend/migrations"
)

// maxBodyBytes caps request bodies; no legitimate payload comes close.
const maxBodyBytes = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	// .env is a local-development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic. In container
	// deployments the database often comes up a few seconds after the API,
	// so the ping retries with exponential backoff.
	if err := pingWithRetry(context.Background(), pool); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if err := runMigrations(context.Background(), cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// --- Dependencies -----------------------------------------------------
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := repo.NewUserRepo(pool)
	countryRepo := repo.NewCountryRepo(pool)
	itineraryRepo := repo.NewItineraryRepo(pool)

	userSvc := service.NewUserService(userRepo, tokens)
	countrySvc := service.NewCountryService(countryRepo)
	itinerarySvc := service.NewItineraryService(itineraryRepo)

	quota := planner.NewQuotaTracker()
	flights := flightapi.NewClient(cfg.FlightAPIURL, cfg.FlightAPIKey, cfg.FlightAPIHost, logger)
	hotels := hotelapi.NewClient(cfg.HotelAPIURL, cfg.HotelAPIKey, cfg.HotelAPIHost, logger)
	aggregator := planner.NewAggregator(countryRepo, flights, hotels, quota, planner.DefaultDirectory(), logger)
	tripPlanner := planner.NewPlanner(aggregator, sponsorship.NewCatalog(), quota, logger)

	server := handler.NewServer(userSvc, countrySvc, itinerarySvc, tripPlanner, aggregator)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS →
	// body cap → rate limit. Recoverer sits above the handlers so a panic
	// becomes a 500 with a logged stack instead of a dead process.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))
	r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS))

	r.Mount("/", server.Routes(middleware.NewAuthenticator(tokens)))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// pingWithRetry pings the pool with exponential backoff, capped at five
// attempts over roughly fifteen seconds.
func pingWithRetry(ctx context.Context, pool *pgxpool.Pool) error {
	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			slog.Warn("database not ready, retrying", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

// runMigrations applies any pending embedded migrations. goose drives a
// database/sql connection, so it opens its own short-lived handle rather
// than borrowing from the pgx pool.
func runMigrations(ctx context.Context, databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("applied migration", "migration", res.Source.Path)
	}
	return nil
}
