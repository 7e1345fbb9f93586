package forecast

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trilhasbrasil/backend/internal/domain"
)

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

// monday is 2024-03-11, a Monday
var monday = time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)

func sampleAt(t time.Time, temp float64) domain.RawSample {
	return domain.RawSample{
		TimestampUTC:   t.Unix(),
		Temperature:    f64(temp),
		FeelsLike:      f64(temp - 1),
		Humidity:       intp(60),
		WindSpeed:      f64(2.5),
		ConditionCode:  800,
		ConditionLabel: "céu limpo",
		IconID:         "01d",
	}
}

// fiveDays returns 8 samples per day, temperature equal to the hour plus
// ten times the day index, so the noon sample is recognizable.
func fiveDays(days int) []domain.RawSample {
	samples := make([]domain.RawSample, 0, days*8)
	for d := 0; d < days; d++ {
		for h := 0; h < 24; h += 3 {
			ts := monday.AddDate(0, 0, d).Add(time.Duration(h) * time.Hour)
			samples = append(samples, sampleAt(ts, float64(h+10*d)))
		}
	}
	return samples
}

func TestAggregateEmpty(t *testing.T) {
	out, err := Aggregate(nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestAggregateFiveDays(t *testing.T) {
	out, err := Aggregate(fiveDays(5))
	require.NoError(t, err)
	require.Len(t, out, 5)

	labels := []string{"seg.", "ter.", "qua.", "qui.", "sex."}
	for d, day := range out {
		assert.Equal(t, labels[d], day.DayLabel)
		assert.Equal(t, 12+10*d, day.Temperature, "day %d should use the noon sample", d)
		assert.Equal(t, 11+10*d, day.FeelsLike)
		assert.Equal(t, domain.ConditionSunny, day.Condition)
		assert.Equal(t, 800, day.ConditionCode)
		assert.Equal(t, "céu limpo", day.ConditionLabel)
		assert.Equal(t, "01d", day.IconID)
	}
}

func TestAggregateTruncatesToFiveDays(t *testing.T) {
	out, err := Aggregate(fiveDays(7))
	require.NoError(t, err)
	require.Len(t, out, MaxDays)
	assert.Equal(t, 52, out[4].Temperature)
}

func TestAggregateNoonSelection(t *testing.T) {
	at := func(h int) time.Time { return monday.Add(time.Duration(h) * time.Hour) }

	tests := []struct {
		name  string
		hours []int
		want  int
	}{
		{"exact noon wins", []int{9, 12, 15}, 12},
		{"tie keeps first", []int{9, 15}, 9},
		{"tie keeps first reversed", []int{15, 9}, 15},
		{"closest single side", []int{0, 3, 6}, 6},
		{"late evening", []int{18, 21, 14}, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var samples []domain.RawSample
			for _, h := range tt.hours {
				samples = append(samples, sampleAt(at(h), float64(h)))
			}
			out, err := Aggregate(samples)
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, tt.want, out[0].Temperature)
		})
	}
}

func TestAggregateUsesResponseTimezone(t *testing.T) {
	brasilia := time.FixedZone("BRT", -3*3600)

	// 02:00 UTC on Tuesday is still Monday 23:00 in Brasília
	samples := []domain.RawSample{
		sampleAt(monday.Add(15*time.Hour), 1), // Monday 12:00 local
		sampleAt(monday.Add(26*time.Hour), 2), // Monday 23:00 local
		sampleAt(monday.Add(39*time.Hour), 3), // Tuesday 12:00 local
	}

	out, err := Aggregate(samples, WithLocation(brasilia))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Temperature)
	assert.Equal(t, "seg.", out[0].DayLabel)
	assert.Equal(t, 3, out[1].Temperature)

	utc, err := Aggregate(samples)
	require.NoError(t, err)
	require.Len(t, utc, 2)
	assert.Equal(t, 1, utc[0].Temperature)
	assert.Equal(t, 3, utc[1].Temperature, "15:00 UTC is closer to noon than 02:00 UTC")
}

func TestAggregateOrderFollowsFirstEncounter(t *testing.T) {
	samples := []domain.RawSample{
		sampleAt(monday.AddDate(0, 0, 1).Add(12*time.Hour), 20),
		sampleAt(monday.Add(12*time.Hour), 10),
	}
	out, err := Aggregate(samples)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 20, out[0].Temperature)
	assert.Equal(t, 10, out[1].Temperature)
}

func TestAggregateConversions(t *testing.T) {
	s := sampleAt(monday.Add(12*time.Hour), 21.6)
	s.FeelsLike = f64(-2.5)
	s.WindSpeed = f64(10.0)
	s.PrecipitationProbability = f64(0.73)

	out, err := Aggregate([]domain.RawSample{s})
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, 22, out[0].Temperature)
	assert.Equal(t, -2, out[0].FeelsLike, "halves round up")
	assert.Equal(t, 36, out[0].WindSpeedKmh)
	assert.Equal(t, 73, out[0].PrecipitationPercent)
	assert.Equal(t, 60, out[0].Humidity)
}

func TestAggregatePrecipitationDefaultsToZero(t *testing.T) {
	s := sampleAt(monday.Add(12*time.Hour), 20)
	s.PrecipitationProbability = nil

	out, err := Aggregate([]domain.RawSample{s})
	require.NoError(t, err)
	assert.Equal(t, 0, out[0].PrecipitationPercent)
}

func TestAggregateFeelsLikeFallsBackToTemperature(t *testing.T) {
	s := sampleAt(monday.Add(12*time.Hour), 18.4)
	s.FeelsLike = nil

	out, err := Aggregate([]domain.RawSample{s})
	require.NoError(t, err)
	assert.Equal(t, 18, out[0].FeelsLike)
}

func TestAggregateRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.RawSample)
		field  string
	}{
		{"temperature", func(s *domain.RawSample) { s.Temperature = nil }, "samples[1].temperature"},
		{"humidity", func(s *domain.RawSample) { s.Humidity = nil }, "samples[1].humidity"},
		{"wind", func(s *domain.RawSample) { s.WindSpeed = nil }, "samples[1].wind_speed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := fiveDays(1)[:2]
			tt.mutate(&samples[1])

			out, err := Aggregate(samples)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, domain.ErrValidation))

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestAggregateLocale(t *testing.T) {
	out, err := Aggregate(fiveDays(2), WithLocale(English))
	require.NoError(t, err)
	assert.Equal(t, "Mon", out[0].DayLabel)
	assert.Equal(t, "Tue", out[1].DayLabel)
}
