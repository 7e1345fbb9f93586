package domain

import "time"

// Condition is the display category of a day's weather
type Condition string

const (
	ConditionSunny        Condition = "sunny"
	ConditionPartlyCloudy Condition = "partlyCloudy"
	ConditionCloudy       Condition = "cloudy"
	ConditionRainy        Condition = "rainy"
	ConditionStormy       Condition = "stormy"
	ConditionSnowy        Condition = "snowy"
	ConditionFoggy        Condition = "foggy"
)

// RawSample is a single 3-hour slice returned by the weather provider.
// Pointer fields are nil when the provider omitted them.
type RawSample struct {
	TimestampUTC             int64    `json:"dt"`
	Temperature              *float64 `json:"temperature"`
	FeelsLike                *float64 `json:"feels_like"`
	Humidity                 *int     `json:"humidity"`
	WindSpeed                *float64 `json:"wind_speed"` // m/s
	ConditionCode            int      `json:"condition_code"`
	ConditionLabel           string   `json:"condition_label"`
	IconID                   string   `json:"icon_id"`
	PrecipitationProbability *float64 `json:"pop,omitempty"` // 0.0-1.0
}

// Time returns the sample timestamp as a time.Time in UTC
func (s RawSample) Time() time.Time {
	return time.Unix(s.TimestampUTC, 0).UTC()
}

// DailyForecast is the display-ready record for one calendar day
type DailyForecast struct {
	DayLabel             string    `json:"date"`
	Temperature          int       `json:"temperature"`
	FeelsLike            int       `json:"feelsLike"`
	Condition            Condition `json:"condition"`
	Humidity             int       `json:"humidity"`
	WindSpeedKmh         int       `json:"windSpeed"`
	PrecipitationPercent int       `json:"precipitation"`
	ConditionCode        int       `json:"weatherId,omitempty"`
	ConditionLabel       string    `json:"weatherDescription,omitempty"`
	IconID               string    `json:"weatherIcon,omitempty"`
}

// Coordinates is a WGS84 point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GeoLocation is a geocoding result
type GeoLocation struct {
	Name        string      `json:"name"`
	Country     string      `json:"country"`
	State       string      `json:"state,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

// ProviderForecast is the raw forecast stream for a coordinate
type ProviderForecast struct {
	Samples []RawSample
	// TimezoneOffset is the response timezone as seconds east of UTC
	TimezoneOffset int
	FetchedAt      time.Time
}

// Location returns the provider's response timezone
func (f ProviderForecast) Location() *time.Location {
	if f.TimezoneOffset == 0 {
		return time.UTC
	}
	return time.FixedZone("", f.TimezoneOffset)
}

// WeatherReport is the payload of GET /weather
type WeatherReport struct {
	Data        []DailyForecast `json:"data"`
	Location    GeoLocation     `json:"location"`
	LastUpdated time.Time       `json:"lastUpdated"`
}
