package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trilhasbrasil/backend/internal/domain"
)

// monday 2025-03-03 00:00 UTC
var fixtureStart = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func forecastPayload(t *testing.T, n int, tzOffset int) []byte {
	t.Helper()
	list := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		ts := fixtureStart.Add(time.Duration(3*i) * time.Hour)
		list = append(list, map[string]any{
			"dt": ts.Unix(),
			"main": map[string]any{
				"temp":       20.4 + float64(i%8),
				"feels_like": 19.6,
				"humidity":   60,
			},
			"weather": []map[string]any{{"id": 800, "description": "céu limpo", "icon": "01d"}},
			"wind":    map[string]any{"speed": 2.5},
			"pop":     0.2,
		})
	}
	body, err := json.Marshal(map[string]any{
		"cod":  "200",
		"list": list,
		"city": map[string]any{"name": "Brasília", "timezone": tzOffset},
	})
	require.NoError(t, err)
	return body
}

func newFakeOWM(t *testing.T, forecast []byte) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/geo/1.0/direct", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("q") == "Atlantis" {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[{"name":"Brasília","country":"BR","state":"Federal District","lat":-15.7801,"lon":-47.9292}]`))
	})
	mux.HandleFunc("/data/2.5/forecast", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "metric", q.Get("units"))
		assert.Equal(t, "pt_br", q.Get("lang"))
		assert.Equal(t, "test-key", q.Get("appid"))
		w.Header().Set("Content-Type", "application/json")
		w.Write(forecast)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenWeatherGeocode(t *testing.T) {
	srv := newFakeOWM(t, nil)
	p := NewOpenWeatherProvider("test-key", srv.URL, "pt_br", 100)

	places, err := p.Geocode(context.Background(), "Brasília")
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "BR", places[0].Country)
	assert.InDelta(t, -15.7801, places[0].Coordinates.Lat, 1e-9)
	assert.InDelta(t, -47.9292, places[0].Coordinates.Lng, 1e-9)

	places, err = p.Geocode(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestOpenWeatherForecast(t *testing.T) {
	srv := newFakeOWM(t, forecastPayload(t, 40, -10800))
	p := NewOpenWeatherProvider("test-key", srv.URL, "pt_br", 100)

	fc, err := p.Forecast(context.Background(), -15.78, -47.93)
	require.NoError(t, err)
	require.Len(t, fc.Samples, 40)
	assert.Equal(t, -10800, fc.TimezoneOffset)

	s := fc.Samples[0]
	assert.Equal(t, fixtureStart.Unix(), s.TimestampUTC)
	require.NotNil(t, s.Temperature)
	assert.InDelta(t, 20.4, *s.Temperature, 1e-9)
	require.NotNil(t, s.Humidity)
	assert.Equal(t, 60, *s.Humidity)
	assert.Equal(t, 800, s.ConditionCode)
	assert.Equal(t, "céu limpo", s.ConditionLabel)
	assert.Equal(t, "01d", s.IconID)
	require.NotNil(t, s.PrecipitationProbability)
}

func TestOpenWeatherNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider("bad", srv.URL, "", 100)
	_, err := p.Forecast(context.Background(), 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestParseForecastMissingList(t *testing.T) {
	_, err := ParseForecast([]byte(`{"cod":"200","city":{}}`))
	assert.ErrorIs(t, err, domain.ErrProviderContract)
}

func TestParseForecastKeepsMissingFieldsAbsent(t *testing.T) {
	fc, err := ParseForecast([]byte(`{"list":[{"dt":1,"main":{"temp":0},"weather":[{"id":500}]}]}`))
	require.NoError(t, err)
	require.Len(t, fc.Samples, 1)

	s := fc.Samples[0]
	require.NotNil(t, s.Temperature)
	assert.Equal(t, 0.0, *s.Temperature)
	assert.Nil(t, s.FeelsLike)
	assert.Nil(t, s.Humidity)
	assert.Nil(t, s.WindSpeed)
	assert.Nil(t, s.PrecipitationProbability)
	assert.Equal(t, 500, s.ConditionCode)
	assert.Equal(t, 0, fc.TimezoneOffset)
}

func TestParseForecastEntryWithoutTimestamp(t *testing.T) {
	_, err := ParseForecast([]byte(`{"list":[{"main":{"temp":1}}]}`))
	assert.ErrorIs(t, err, domain.ErrProviderContract)
}
