// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// JWTSecret signs access tokens. Required.
	JWTSecret string

	// TokenTTL is the access-token lifetime. Defaults to 60 minutes.
	// Set TOKEN_TTL_MINUTES to override.
	TokenTTL time.Duration

	// FlightAPIKey authenticates against the flight-search provider.
	// When empty, flight searches fail fast and the planner serves
	// substitute data instead.
	FlightAPIKey string

	// FlightAPIURL is the flight-search base URL. Overridable for tests.
	FlightAPIURL string

	// FlightAPIHost is the RapidAPI host header value for flight search.
	FlightAPIHost string

	// HotelAPIKey authenticates against the hotel-search provider.
	// Same fallback behaviour as FlightAPIKey when empty.
	HotelAPIKey string

	// HotelAPIURL is the hotel-search base URL. Overridable for tests.
	HotelAPIURL string

	// HotelAPIHost is the RapidAPI host header value for hotel search.
	HotelAPIHost string

	// RateLimitRPS is the per-client request rate limit. Defaults to 10.
	RateLimitRPS int
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		FlightAPIKey:  os.Getenv("FLIGHT_API_KEY"),
		FlightAPIURL:  getEnv("FLIGHT_API_URL", "https://flight-data4.p.rapidapi.com"),
		FlightAPIHost: getEnv("FLIGHT_API_HOST", "flight-data4.p.rapidapi.com"),
		HotelAPIKey:   os.Getenv("HOTEL_API_KEY"),
		HotelAPIURL:   getEnv("HOTEL_API_URL", "https://booking-com18.p.rapidapi.com"),
		HotelAPIHost:  getEnv("HOTEL_API_HOST", "booking-com18.p.rapidapi.com"),
		TokenTTL:      60 * time.Minute,
		RateLimitRPS:  10,
	}

	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes < 1 {
			return Config{}, fmt.Errorf("TOKEN_TTL_MINUTES must be a positive integer, got %q", v)
		}
		cfg.TokenTTL = time.Duration(minutes) * time.Minute
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.Atoi(v)
		if err != nil || rps < 1 {
			return Config{}, fmt.Errorf("RATE_LIMIT_RPS must be a positive integer, got %q", v)
		}
		cfg.RateLimitRPS = rps
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
