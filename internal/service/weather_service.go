package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trilhasbrasil/backend/internal/domain"
	"github.com/trilhasbrasil/backend/internal/forecast"
)

// WeatherService builds the 5 day forecast for a place name
type WeatherService struct {
	provider ForecastProvider
	locale   forecast.Locale
	now      func() time.Time
}

// NewWeatherService creates a new weather service. A nil provider means
// no credentials were configured and every request fails.
func NewWeatherService(provider ForecastProvider, locale forecast.Locale) *WeatherService {
	return &WeatherService{
		provider: provider,
		locale:   locale,
		now:      time.Now,
	}
}

// GetForecast geocodes location and aggregates the provider forecast into
// one record per day
func (s *WeatherService) GetForecast(ctx context.Context, location string) (domain.WeatherReport, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return domain.WeatherReport{}, domain.NewValidationError("location", "is required")
	}
	if s.provider == nil {
		return domain.WeatherReport{}, fmt.Errorf("weather: %w", domain.ErrProviderNotConfigured)
	}

	places, err := s.provider.Geocode(ctx, location)
	if err != nil {
		return domain.WeatherReport{}, fmt.Errorf("weather: failed to geocode %q: %w", location, err)
	}
	if len(places) == 0 {
		return domain.WeatherReport{}, fmt.Errorf("weather: %q: %w", location, domain.ErrLocationNotFound)
	}
	place := places[0]

	raw, err := s.provider.Forecast(ctx, place.Coordinates.Lat, place.Coordinates.Lng)
	if err != nil {
		return domain.WeatherReport{}, fmt.Errorf("weather: failed to fetch forecast: %w", err)
	}

	days, err := forecast.Aggregate(raw.Samples,
		forecast.WithLocation(raw.Location()),
		forecast.WithLocale(s.locale),
	)
	if err != nil {
		// a malformed provider sample is an upstream fault, not bad user input
		if errors.Is(err, domain.ErrValidation) {
			return domain.WeatherReport{}, fmt.Errorf("weather: %w: %v", domain.ErrProviderContract, err)
		}
		return domain.WeatherReport{}, fmt.Errorf("weather: failed to aggregate forecast: %w", err)
	}

	return domain.WeatherReport{
		Data:        days,
		Location:    place,
		LastUpdated: s.now().UTC(),
	}, nil
}
