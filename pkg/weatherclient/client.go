// Package weatherclient consumes the /weather endpoint. Failures never reach
// the caller: they are logged and replaced by a deterministic placeholder
// forecast so the page always has five days to show.
package weatherclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/trilhasbrasil/backend/internal/domain"
	"github.com/trilhasbrasil/backend/internal/forecast"
)

// Result is what the client hands to the UI
type Result struct {
	Days        []domain.DailyForecast
	Location    *domain.GeoLocation
	LastUpdated time.Time
	// Fallback is true when Days came from forecast.GenerateFallback
	Fallback bool
}

// Client calls the weather endpoint of the backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	opts       []forecast.Option
}

// New creates a client for the backend at baseURL. opts are passed to
// forecast.GenerateFallback.
func New(baseURL string, opts ...forecast.Option) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		opts: opts,
	}
}

// Forecast fetches the forecast for location, falling back to generated
// data on any error
func (c *Client) Forecast(ctx context.Context, location string) Result {
	report, err := c.fetch(ctx, location)
	if err != nil {
		log.Printf("weatherclient: using fallback for %q: %v", location, err)
		return Result{
			Days:        forecast.GenerateFallback(location, c.opts...),
			LastUpdated: time.Now(),
			Fallback:    true,
		}
	}

	loc := report.Location
	return Result{
		Days:        report.Data,
		Location:    &loc,
		LastUpdated: report.LastUpdated,
	}
}

func (c *Client) fetch(ctx context.Context, location string) (domain.WeatherReport, error) {
	endpoint := c.baseURL + "/weather?" + url.Values{"location": {location}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.WeatherReport{}, fmt.Errorf("weatherclient: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WeatherReport{}, fmt.Errorf("weatherclient: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.WeatherReport{}, fmt.Errorf("weatherclient: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var report domain.WeatherReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return domain.WeatherReport{}, fmt.Errorf("weatherclient: failed to decode response: %w", err)
	}
	if report.Data == nil {
		return domain.WeatherReport{}, fmt.Errorf("weatherclient: response without data")
	}
	return report, nil
}
