package forecast

import "github.com/trilhasbrasil/backend/internal/domain"

// ConditionFromCode maps an OpenWeather condition id to a display category.
// Unknown ids fall back to cloudy.
func ConditionFromCode(code int) domain.Condition {
	switch {
	case code >= 200 && code < 300:
		return domain.ConditionStormy
	case code >= 300 && code < 600:
		return domain.ConditionRainy
	case code >= 600 && code < 700:
		return domain.ConditionSnowy
	case code >= 701 && code <= 781:
		return domain.ConditionFoggy
	case code == 800:
		return domain.ConditionSunny
	case code == 801 || code == 802:
		return domain.ConditionPartlyCloudy
	case code == 803 || code == 804:
		return domain.ConditionCloudy
	default:
		return domain.ConditionCloudy
	}
}

// IconFor returns the daytime OpenWeather icon id for a category
func IconFor(c domain.Condition) string {
	switch c {
	case domain.ConditionSunny:
		return "01d"
	case domain.ConditionPartlyCloudy:
		return "02d"
	case domain.ConditionCloudy:
		return "04d"
	case domain.ConditionRainy:
		return "10d"
	case domain.ConditionStormy:
		return "11d"
	case domain.ConditionSnowy:
		return "13d"
	case domain.ConditionFoggy:
		return "50d"
	}
	return "04d"
}
