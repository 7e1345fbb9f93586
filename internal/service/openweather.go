package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/trilhasbrasil/backend/internal/domain"
)

// DefaultOpenWeatherURL is the public OpenWeatherMap endpoint
const DefaultOpenWeatherURL = "https://api.openweathermap.org"

// OpenWeatherProvider talks to the OpenWeatherMap geocoding and 5 day
// forecast APIs.
type OpenWeatherProvider struct {
	apiKey     string
	baseURL    string
	lang       string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewOpenWeatherProvider creates a provider. rps limits outgoing requests;
// lang is the provider language code for condition labels.
func NewOpenWeatherProvider(apiKey, baseURL, lang string, rps float64) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	if rps <= 0 {
		rps = 1
	}
	return &OpenWeatherProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		lang:    lang,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 2),
	}
}

func (p *OpenWeatherProvider) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("openweather: rate limit wait canceled: %w", err)
	}

	params.Set("appid", p.apiKey)
	endpoint := p.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("openweather: failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openweather: request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openweather: failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openweather: %s returned status %d: %s",
			path, resp.StatusCode, gjson.GetBytes(body, "message").String())
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("openweather: %w: %s returned invalid JSON", domain.ErrProviderContract, path)
	}
	return body, nil
}

// Geocode resolves a free-text place name to at most one location
func (p *OpenWeatherProvider) Geocode(ctx context.Context, query string) ([]domain.GeoLocation, error) {
	body, err := p.get(ctx, "/geo/1.0/direct", url.Values{
		"q":     {query},
		"limit": {"1"},
	})
	if err != nil {
		return nil, err
	}

	res := gjson.ParseBytes(body)
	if !res.IsArray() {
		return nil, fmt.Errorf("openweather: %w: geocoding response is not a list", domain.ErrProviderContract)
	}

	out := make([]domain.GeoLocation, 0, 1)
	for _, item := range res.Array() {
		lat, lon := item.Get("lat"), item.Get("lon")
		if !lat.Exists() || !lon.Exists() {
			continue
		}
		out = append(out, domain.GeoLocation{
			Name:        item.Get("name").String(),
			Country:     item.Get("country").String(),
			State:       item.Get("state").String(),
			Coordinates: domain.Coordinates{Lat: lat.Float(), Lng: lon.Float()},
		})
	}
	return out, nil
}

// Forecast fetches the 3-hour forecast stream for a coordinate
func (p *OpenWeatherProvider) Forecast(ctx context.Context, lat, lng float64) (domain.ProviderForecast, error) {
	params := url.Values{
		"lat":   {fmt.Sprintf("%f", lat)},
		"lon":   {fmt.Sprintf("%f", lng)},
		"units": {"metric"},
	}
	if p.lang != "" {
		params.Set("lang", p.lang)
	}

	body, err := p.get(ctx, "/data/2.5/forecast", params)
	if err != nil {
		return domain.ProviderForecast{}, err
	}
	return ParseForecast(body)
}

// ParseForecast decodes an OpenWeatherMap /data/2.5/forecast payload.
// Numeric fields absent from a list entry stay nil in the sample.
func ParseForecast(body []byte) (domain.ProviderForecast, error) {
	res := gjson.ParseBytes(body)
	list := res.Get("list")
	if !list.IsArray() {
		return domain.ProviderForecast{}, fmt.Errorf("openweather: %w: response has no list", domain.ErrProviderContract)
	}

	entries := list.Array()
	samples := make([]domain.RawSample, 0, len(entries))
	for i, item := range entries {
		dt := item.Get("dt")
		if !dt.Exists() {
			return domain.ProviderForecast{}, fmt.Errorf("openweather: %w: list[%d] has no dt", domain.ErrProviderContract, i)
		}
		samples = append(samples, domain.RawSample{
			TimestampUTC:             dt.Int(),
			Temperature:              optFloat(item.Get("main.temp")),
			FeelsLike:                optFloat(item.Get("main.feels_like")),
			Humidity:                 optInt(item.Get("main.humidity")),
			WindSpeed:                optFloat(item.Get("wind.speed")),
			ConditionCode:            int(item.Get("weather.0.id").Int()),
			ConditionLabel:           item.Get("weather.0.description").String(),
			IconID:                   item.Get("weather.0.icon").String(),
			PrecipitationProbability: optFloat(item.Get("pop")),
		})
	}

	return domain.ProviderForecast{
		Samples:        samples,
		TimezoneOffset: int(res.Get("city.timezone").Int()),
		FetchedAt:      time.Now(),
	}, nil
}

func optFloat(r gjson.Result) *float64 {
	if !r.Exists() || r.Type != gjson.Number {
		return nil
	}
	v := r.Float()
	return &v
}

func optInt(r gjson.Result) *int {
	if !r.Exists() || r.Type != gjson.Number {
		return nil
	}
	v := int(r.Int())
	return &v
}

var _ ForecastProvider = (*OpenWeatherProvider)(nil)
