// Package hotelapi is a thin client for the external hotel-stay search
// provider. Like flightapi, it carries no fallback policy of its own.
package hotelapi

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

	"github.com/nomadscompass/backend/internal/domain"
)

// Client calls the hotel-stay provider over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	apiHost string
	http    *http.Client
	log     *slog.Logger
	now     func() time.Time
}

// NewClient constructs a hotel-search client.
// baseURL is overridable so tests can point it at an httptest server.
func NewClient(baseURL, apiKey, apiHost string, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		apiHost: apiHost,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
		now:     time.Now,
	}
}

// statusError mirrors flightapi's: the status code must appear in the
// message text so quota classification works.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("hotel api: status %d: %s", e.Code, e.Body)
}

// ResolveLocation maps a city name to the provider's opaque location ID.
// Returns "" with a nil error when the provider has no match — an empty
// result set, not a failure.
func (c *Client) ResolveLocation(ctx context.Context, city string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("hotel api: no API key configured")
	}

	u := fmt.Sprintf("%s/stays/auto-complete?%s", c.baseURL, url.Values{"query": {city}}.Encode())

	var payload struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return "", err
	}

	if len(payload.Data) == 0 {
		return "", nil
	}
	return payload.Data[0].ID, nil
}

// SearchByLocation returns hotel options for a resolved location ID, using a
// stay window 30–35 days out (the provider requires concrete dates for a
// price quote, and the itinerary date may be absent).
func (c *Client) SearchByLocation(ctx context.Context, locationID string) ([]domain.HotelOption, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("hotel api: no API key configured")
	}

	checkin := c.now().AddDate(0, 0, 30).Format("2006-01-02")
	checkout := c.now().AddDate(0, 0, 35).Format("2006-01-02")

	params := url.Values{
		"locationId":   {locationID},
		"checkinDate":  {checkin},
		"checkoutDate": {checkout},
		"adults":       {"2"},
		"language":     {"en-gb"},
		"currency":     {"INR"},
	}
	u := fmt.Sprintf("%s/stays/search?%s", c.baseURL, params.Encode())

	var payload struct {
		Data []struct {
			Name     string  `json:"name"`
			Location string  `json:"location"`
			Price    float64 `json:"price"`
			Currency string  `json:"currency"`
			Rating   float64 `json:"rating"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}

	options := make([]domain.HotelOption, 0, len(payload.Data))
	for _, h := range payload.Data {
		options = append(options, domain.HotelOption{
			Name:         h.Name,
			Location:     h.Location,
			NightlyPrice: h.Price,
			Currency:     h.Currency,
			Rating:       h.Rating,
		})
	}

	c.log.DebugContext(ctx, "hotel search complete", "location_id", locationID, "options", len(options))
	return options, nil
}

// getJSON performs an authenticated GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("hotel api: create request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.apiHost)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("hotel api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		return &statusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("hotel api: decode response: %w", err)
	}
	return nil
}
