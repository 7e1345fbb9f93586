// Package forecast turns the provider's 3-hour forecast stream into one
// display record per calendar day.
package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/trilhasbrasil/backend/internal/domain"
)

// MaxDays is the number of days the provider covers
const MaxDays = 5

const (
	noonHour     = 12
	msToKmh      = 3.6
	percentScale = 100
)

type options struct {
	loc    *time.Location
	locale Locale
}

// Option configures Aggregate and GenerateFallback
type Option func(*options)

// WithLocation sets the timezone used for calendar days and hours
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithLocale sets the language of the day labels
func WithLocale(l Locale) Option {
	return func(o *options) { o.locale = l }
}

func buildOptions(opts []Option) options {
	o := options{loc: time.UTC, locale: PortugueseBR}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type dayGroup struct {
	key    string
	sample domain.RawSample
	hour   int
}

// Aggregate picks the sample closest to noon for each calendar day and
// converts it for display. At most MaxDays entries are returned, in the
// order their days first appear in samples. Empty input is not an error.
func Aggregate(samples []domain.RawSample, opts ...Option) ([]domain.DailyForecast, error) {
	o := buildOptions(opts)

	if err := validate(samples); err != nil {
		return nil, err
	}

	groups := make([]*dayGroup, 0, MaxDays)
	index := make(map[string]*dayGroup)

	for _, s := range samples {
		local := s.Time().In(o.loc)
		key := local.Format(time.DateOnly)
		hour := local.Hour()

		g, ok := index[key]
		if !ok {
			g = &dayGroup{key: key, sample: s, hour: hour}
			index[key] = g
			groups = append(groups, g)
			continue
		}
		if distanceFromNoon(hour) < distanceFromNoon(g.hour) {
			g.sample = s
			g.hour = hour
		}
	}

	if len(groups) > MaxDays {
		groups = groups[:MaxDays]
	}

	out := make([]domain.DailyForecast, 0, len(groups))
	for _, g := range groups {
		out = append(out, toDaily(g.sample, o))
	}
	return out, nil
}

func validate(samples []domain.RawSample) error {
	for i, s := range samples {
		switch {
		case s.Temperature == nil || !finite(*s.Temperature):
			return domain.NewValidationError(fmt.Sprintf("samples[%d].temperature", i), "missing or not numeric (dt=%d)", s.TimestampUTC)
		case s.Humidity == nil:
			return domain.NewValidationError(fmt.Sprintf("samples[%d].humidity", i), "missing or not numeric (dt=%d)", s.TimestampUTC)
		case s.WindSpeed == nil || !finite(*s.WindSpeed):
			return domain.NewValidationError(fmt.Sprintf("samples[%d].wind_speed", i), "missing or not numeric (dt=%d)", s.TimestampUTC)
		}
	}
	return nil
}

func toDaily(s domain.RawSample, o options) domain.DailyForecast {
	feelsLike := *s.Temperature
	if s.FeelsLike != nil && finite(*s.FeelsLike) {
		feelsLike = *s.FeelsLike
	}

	precipitation := 0
	if s.PrecipitationProbability != nil && finite(*s.PrecipitationProbability) {
		precipitation = round(*s.PrecipitationProbability * percentScale)
	}

	return domain.DailyForecast{
		DayLabel:             o.locale.Weekday(s.Time().In(o.loc)),
		Temperature:          round(*s.Temperature),
		FeelsLike:            round(feelsLike),
		Condition:            ConditionFromCode(s.ConditionCode),
		Humidity:             *s.Humidity,
		WindSpeedKmh:         round(*s.WindSpeed * msToKmh),
		PrecipitationPercent: precipitation,
		ConditionCode:        s.ConditionCode,
		ConditionLabel:       s.ConditionLabel,
		IconID:               s.IconID,
	}
}

func distanceFromNoon(hour int) int {
	d := hour - noonHour
	if d < 0 {
		return -d
	}
	return d
}

// round rounds half up, so -2.5 becomes -2
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
