package model

// GeoPoint is a geocoded place: the first match for a free-text city query.
type GeoPoint struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// DailyWeather is one forecast day. Code is the WMO integer weather code and
// Summary its localized description (empty for codes outside the vocabulary).
type DailyWeather struct {
	Date             string  `json:"date"`
	Code             int     `json:"code"`
	Summary          string  `json:"summary"`
	TempMax          float64 `json:"temp_max"`
	TempMin          float64 `json:"temp_min"`
	PrecipitationSum float64 `json:"precipitation_sum"`
}

// WeatherReport is the normalized multi-day forecast for a resolved place.
// Days are ordered by date ascending; Overview is derived from aggregates and
// therefore independent of day order.
type WeatherReport struct {
	Geo      GeoPoint       `json:"geo"`
	Days     []DailyWeather `json:"days"`
	Overview string         `json:"overview"`
}
