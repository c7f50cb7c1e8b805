package liveaqi

import "time"

// Category is the OpenWeather 1-5 air quality label.
type Category string

const (
	CategoryGood     Category = "Good"
	CategoryFair     Category = "Fair"
	CategoryModerate Category = "Moderate"
	CategoryPoor     Category = "Poor"
	CategoryVeryPoor Category = "Very Poor"
	CategoryUnknown  Category = "Unknown"
)

// CategoryFor maps an AQI code to its label. Anything outside 1-5,
// including the zero value used for "absent", maps to Unknown.
func CategoryFor(code int) Category {
	switch code {
	case 1:
		return CategoryGood
	case 2:
		return CategoryFair
	case 3:
		return CategoryModerate
	case 4:
		return CategoryPoor
	case 5:
		return CategoryVeryPoor
	default:
		return CategoryUnknown
	}
}

// PollutantSnapshot maps pollutant keys (co, no, no2, o3, so2, pm2_5, pm10,
// nh3) to concentrations in micrograms per cubic meter. Keys the provider
// omitted are absent, never zero-filled.
type PollutantSnapshot map[string]float64

// PollutionSample is one timestamped provider reading.
type PollutionSample struct {
	AQI        int               `json:"aqi"`
	Components PollutantSnapshot `json:"components"`
	Timestamp  time.Time         `json:"timestamp"`
}

// PollutionData bundles the current reading with the truncated forecast.
type PollutionData struct {
	Current  PollutionSample
	Forecast []PollutionSample
}

// Location is a resolved geocoding candidate.
type Location struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Record is the normalized result of a live lookup. AQI is 0 when the
// provider did not report a code.
type Record struct {
	Location     Location          `json:"location"`
	AQI          int               `json:"aqi"`
	Category     Category          `json:"category"`
	Components   PollutantSnapshot `json:"components"`
	ForecastText string            `json:"forecastText"`
	Forecast     []PollutionSample `json:"forecast"`
}

// Advisory is static health guidance derived from the AQI code.
type Advisory struct {
	Text  string `json:"text"`
	Alert bool   `json:"alert"`
}

// Config wires runtime knobs for the live lookup domain.
type Config struct {
	ForecastBuckets int
}
