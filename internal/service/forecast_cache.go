package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/trilhasbrasil/backend/internal/domain"
)

// CachedForecastProvider keeps raw provider forecasts per coordinate for a
// fixed TTL. Only the raw stream is cached; aggregation runs per request.
// Expired coordinates are dropped whenever a fresh forecast is stored, so
// the cache holds at most the coordinates asked for within one TTL.
type CachedForecastProvider struct {
	provider ForecastProvider
	ttl      time.Duration
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]cachedForecast // key is lat,lng at 4 decimals
	hits    int
	misses  int
}

type cachedForecast struct {
	forecast  domain.ProviderForecast
	expiresAt time.Time
}

// NewCachedForecastProvider wraps provider with a per-coordinate cache
func NewCachedForecastProvider(provider ForecastProvider, ttl time.Duration) *CachedForecastProvider {
	return &CachedForecastProvider{
		provider: provider,
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[string]cachedForecast),
	}
}

// Geocode is not cached
func (c *CachedForecastProvider) Geocode(ctx context.Context, query string) ([]domain.GeoLocation, error) {
	return c.provider.Geocode(ctx, query)
}

// Forecast serves a stored forecast for the coordinate while it is fresh.
// Provider errors are returned as is and never stored.
func (c *CachedForecastProvider) Forecast(ctx context.Context, lat, lng float64) (domain.ProviderForecast, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lng)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Before(e.expiresAt) {
		c.hits++
		c.mu.Unlock()
		return e.forecast, nil
	}
	c.misses++
	c.mu.Unlock()

	log.Printf("forecast cache: miss for %s", key)
	fc, err := c.provider.Forecast(ctx, lat, lng)
	if err != nil {
		return domain.ProviderForecast{}, err
	}

	c.mu.Lock()
	now := c.now()
	c.evictExpiredLocked(now)
	if c.ttl > 0 {
		c.entries[key] = cachedForecast{forecast: fc, expiresAt: now.Add(c.ttl)}
	}
	c.mu.Unlock()

	return fc, nil
}

func (c *CachedForecastProvider) evictExpiredLocked(now time.Time) {
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// CacheStats returns the hit and miss counters
func (c *CachedForecastProvider) CacheStats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of stored coordinates
func (c *CachedForecastProvider) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

var _ ForecastProvider = (*CachedForecastProvider)(nil)
