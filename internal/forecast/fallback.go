package forecast

import (
	"math"
	"time"
	"unicode/utf16"

	"github.com/trilhasbrasil/backend/internal/domain"
)

var fallbackConditions = [...]domain.Condition{
	domain.ConditionSunny,
	domain.ConditionCloudy,
	domain.ConditionRainy,
	domain.ConditionStormy,
	domain.ConditionPartlyCloudy,
	domain.ConditionFoggy,
	domain.ConditionSnowy,
}

// GenerateFallback builds a placeholder five day forecast for today onwards
// from seed, usually the location name. Same seed, same numbers.
func GenerateFallback(seed string, opts ...Option) []domain.DailyForecast {
	return GenerateFallbackAt(seed, time.Now(), opts...)
}

// GenerateFallbackAt is GenerateFallback with an explicit "today"
func GenerateFallbackAt(seed string, now time.Time, opts ...Option) []domain.DailyForecast {
	o := buildOptions(opts)
	hash := seedHash(seed)
	today := now.In(o.loc)

	out := make([]domain.DailyForecast, 0, MaxDays)
	for i := 0; i < MaxDays; i++ {
		condition := fallbackConditions[(hash+i)%len(fallbackConditions)]
		variation := round(5 * math.Sin(float64(i)*math.Pi/2))
		temperature := 15 + hash%15 + variation

		out = append(out, domain.DailyForecast{
			DayLabel:             o.locale.Weekday(today.AddDate(0, 0, i)),
			Temperature:          temperature,
			FeelsLike:            temperature - (2 + hash%3),
			Condition:            condition,
			Humidity:             40 + (hash+i*7)%40,
			WindSpeedKmh:         5 + (hash+i*3)%20,
			PrecipitationPercent: 10 + (hash+i*5)%30,
			ConditionLabel:       string(condition),
			IconID:               IconFor(condition),
		})
	}
	return out
}

// seedHash sums the UTF-16 code units of seed
func seedHash(seed string) int {
	sum := 0
	for _, unit := range utf16.Encode([]rune(seed)) {
		sum += int(unit)
	}
	return sum
}
