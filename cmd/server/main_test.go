package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trilhasbrasil/backend/internal/repository/postgres"
	"github.com/trilhasbrasil/backend/internal/repository/sqlite"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "OPENWEATHER_RPS", "WEATHER_CACHE_TTL", "HIKE_TICK", "WEATHER_LOCALE"} {
		t.Setenv(key, "")
	}

	cfg := loadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 1.0, cfg.OpenWeatherRPS)
	assert.Equal(t, 30*time.Minute, cfg.WeatherCacheTTL)
	assert.Equal(t, time.Second, cfg.HikeTick)
	assert.Equal(t, "pt-BR", cfg.WeatherLocale)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("OPENWEATHER_RPS", "0.5")
	t.Setenv("WEATHER_CACHE_TTL", "5m")
	t.Setenv("HIKE_TICK", "not-a-duration")

	cfg := loadConfig()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 0.5, cfg.OpenWeatherRPS)
	assert.Equal(t, 5*time.Minute, cfg.WeatherCacheTTL)
	assert.Equal(t, time.Second, cfg.HikeTick)
}

func TestOpenRepository(t *testing.T) {
	ctx := context.Background()

	repo, closeRepo := openRepository(ctx, &Config{})
	closeRepo()
	assert.IsType(t, &postgres.MockRepository{}, repo)

	repo, closeRepo = openRepository(ctx, &Config{SQLitePath: filepath.Join(t.TempDir(), "t.db")})
	defer closeRepo()
	require.IsType(t, &sqlite.Repository{}, repo)

	parks, err := repo.ListParks(ctx, "")
	require.NoError(t, err)
	assert.Len(t, parks, 5)
}
