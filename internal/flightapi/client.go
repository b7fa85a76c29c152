// Package flightapi is a thin client for the external flight-data search
// provider. It knows nothing about quota state or fallback policy — it
// returns live results or a descriptive error, and the planner decides what
// to do with failures.
package flightapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nomadscompass/backend/internal/domain"
)

// majorAirlines are the carriers queried to approximate a route search.
// The provider only exposes per-airline listings, so a route search fans out
// across these and filters the merged result.
var majorAirlines = []string{"AI", "6E", "SQ", "EK"}

// Client calls the flight-data provider over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	apiHost string
	http    *http.Client
	log     *slog.Logger
}

// NewClient constructs a flight-search client.
// baseURL is overridable so tests can point it at an httptest server.
// An empty apiKey is allowed; searches then fail fast with a clear error and
// the planner serves substitute data.
func NewClient(baseURL, apiKey, apiHost string, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		apiHost: apiHost,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// statusError carries the upstream HTTP status and response body.
// The status code appears in Error() so quota classification ("429") works
// on the message text.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("flight api: status %d: %s", e.Code, e.Body)
}

// apiFlight is the provider's wire format for one flight.
type apiFlight struct {
	Airline       string  `json:"airline"`
	FlightNumber  string  `json:"flight_number"`
	Departure     string  `json:"departure"`
	Arrival       string  `json:"arrival"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
}

// SearchRoute returns live flight options for the given route, querying the
// major airlines concurrently and filtering the merged list. The date is
// advisory only — the provider does not filter by date, so neither do we.
// Any single upstream failure fails the whole search; the caller classifies
// and substitutes.
func (c *Client) SearchRoute(ctx context.Context, origin, destination string, _ *time.Time) ([]domain.FlightOption, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("flight api: no API key configured")
	}

	results := make([][]apiFlight, len(majorAirlines))
	g, gctx := errgroup.WithContext(ctx)
	for i, airline := range majorAirlines {
		i, airline := i, airline
		g.Go(func() error {
			flights, err := c.fetchAirline(gctx, airline)
			if err != nil {
				return err
			}
			results[i] = flights
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	origin = strings.ToUpper(origin)
	destination = strings.ToUpper(destination)

	var options []domain.FlightOption
	for _, flights := range results {
		for _, f := range flights {
			if strings.ToUpper(f.Departure) != origin || strings.ToUpper(f.Arrival) != destination {
				continue
			}
			options = append(options, domain.FlightOption{
				Airline:       f.Airline,
				FlightNumber:  f.FlightNumber,
				Departure:     strings.ToUpper(f.Departure),
				Arrival:       strings.ToUpper(f.Arrival),
				DepartureTime: f.DepartureTime,
				ArrivalTime:   f.ArrivalTime,
				Price:         f.Price,
				Currency:      f.Currency,
			})
		}
	}

	c.log.DebugContext(ctx, "flight search complete",
		"origin", origin, "destination", destination, "options", len(options))
	return options, nil
}

// fetchAirline retrieves the full listing for one airline.
func (c *Client) fetchAirline(ctx context.Context, airline string) ([]apiFlight, error) {
	u := fmt.Sprintf("%s/get_airline_flights?%s", c.baseURL, url.Values{"airline": {airline}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("flight api: create request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.apiHost)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flight api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		return nil, &statusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var flights []apiFlight
	if err := json.NewDecoder(resp.Body).Decode(&flights); err != nil {
		return nil, fmt.Errorf("flight api: decode response for %s: %w", airline, err)
	}
	return flights, nil
}
