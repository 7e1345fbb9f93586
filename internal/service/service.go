package service

import (
	"context"

	"github.com/trilhasbrasil/backend/internal/domain"
)

// DataRepository is re-exported from domain for convenience
type DataRepository = domain.DataRepository

// ForecastProvider resolves place names and fetches raw 3-hour forecasts
type ForecastProvider interface {
	Geocode(ctx context.Context, query string) ([]domain.GeoLocation, error)
	Forecast(ctx context.Context, lat, lng float64) (domain.ProviderForecast, error)
}
