package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trilhasbrasil/backend/internal/domain"
)

func TestGenerateFallbackDeterministic(t *testing.T) {
	first := GenerateFallbackAt("Brasília, DF", monday)
	second := GenerateFallbackAt("Brasília, DF", monday)
	assert.Equal(t, first, second)

	// numbers do not depend on the day
	later := GenerateFallbackAt("Brasília, DF", monday.AddDate(0, 1, 3))
	for i := range first {
		assert.Equal(t, first[i].Temperature, later[i].Temperature)
		assert.Equal(t, first[i].Condition, later[i].Condition)
	}
}

func TestGenerateFallbackAlwaysFiveDays(t *testing.T) {
	for _, seed := range []string{"", "a", "Brasília, DF", "Parque Nacional da Chapada dos Veadeiros", "🌧"} {
		out := GenerateFallback(seed)
		assert.Len(t, out, MaxDays, "seed %q", seed)
	}
}

func TestGenerateFallbackFormula(t *testing.T) {
	// "a" hashes to 97
	out := GenerateFallbackAt("a", monday)
	require.Len(t, out, 5)

	assert.Equal(t, domain.ConditionSnowy, out[0].Condition)
	assert.Equal(t, 22, out[0].Temperature)
	assert.Equal(t, 19, out[0].FeelsLike)
	assert.Equal(t, 57, out[0].Humidity)
	assert.Equal(t, 22, out[0].WindSpeedKmh)
	assert.Equal(t, 17, out[0].PrecipitationPercent)
	assert.Equal(t, "seg.", out[0].DayLabel)
	assert.Equal(t, "snowy", out[0].ConditionLabel)

	assert.Equal(t, domain.ConditionSunny, out[1].Condition)
	assert.Equal(t, 27, out[1].Temperature)
	assert.Equal(t, 22, out[2].Temperature)
	assert.Equal(t, 17, out[3].Temperature)
	assert.Equal(t, 22, out[4].Temperature)
	assert.Equal(t, "sex.", out[4].DayLabel)

	assert.Equal(t, 40+(97+28)%40, out[4].Humidity)
	assert.Equal(t, 5+(97+12)%20, out[4].WindSpeedKmh)
	assert.Equal(t, 10+(97+20)%30, out[4].PrecipitationPercent)
}

func TestGenerateFallbackEmptySeed(t *testing.T) {
	out := GenerateFallbackAt("", monday)
	require.Len(t, out, 5)
	assert.Equal(t, domain.ConditionSunny, out[0].Condition)
	assert.Equal(t, 15, out[0].Temperature)
	assert.Equal(t, 13, out[0].FeelsLike)
	assert.Equal(t, 40, out[0].Humidity)
}

func TestSeedHashCountsUTF16Units(t *testing.T) {
	assert.Equal(t, 0, seedHash(""))
	assert.Equal(t, 97+98, seedHash("ab"))
	assert.Equal(t, 0xED, seedHash("í"))
	// astral runes count as a surrogate pair
	assert.Equal(t, 0xD83C+0xDF27, seedHash("🌧"))
}

func TestGenerateFallbackLocation(t *testing.T) {
	// 23:00 UTC Monday is already Tuesday in UTC+3
	now := monday.Add(23 * time.Hour)
	out := GenerateFallbackAt("x", now, WithLocation(time.FixedZone("", 3*3600)))
	assert.Equal(t, "ter.", out[0].DayLabel)
}
