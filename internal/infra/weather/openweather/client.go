package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/aqi-analyst/internal/domain/liveaqi"
)

const (
	defaultGeocodingBaseURL = "https://api.openweathermap.org/geo/1.0"
	defaultPollutionBaseURL = "https://api.openweathermap.org/data/2.5"
)

// Client fetches geocoding and air pollution data from OpenWeather.
type Client struct {
	apiKey           string
	geocodingBaseURL string
	pollutionBaseURL string
	forecastSamples  int
	httpClient       *http.Client
}

// NewClient builds an API client. An empty API key is tolerated; calls then
// fail with liveaqi.ErrNoCredential instead of reaching the network.
func NewClient(apiKey, geocodingBaseURL, pollutionBaseURL string, timeout time.Duration, forecastSamples int) *Client {
	if strings.TrimSpace(geocodingBaseURL) == "" {
		geocodingBaseURL = defaultGeocodingBaseURL
	}
	if strings.TrimSpace(pollutionBaseURL) == "" {
		pollutionBaseURL = defaultPollutionBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if forecastSamples <= 0 {
		forecastSamples = 3
	}
	return &Client{
		apiKey:           strings.TrimSpace(apiKey),
		geocodingBaseURL: strings.TrimRight(geocodingBaseURL, "/"),
		pollutionBaseURL: strings.TrimRight(pollutionBaseURL, "/"),
		forecastSamples:  forecastSamples,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Geocode resolves a free-text city name to coordinates. Exactly one
// candidate is requested; ambiguity is not surfaced.
func (c *Client) Geocode(ctx context.Context, city string) (liveaqi.Location, error) {
	if c.apiKey == "" {
		return liveaqi.Location{}, liveaqi.ErrNoCredential
	}

	endpoint := fmt.Sprintf("%s/direct?q=%s&limit=1&appid=%s", c.geocodingBaseURL, url.QueryEscape(city), url.QueryEscape(c.apiKey))
	var candidates []geoCandidate
	if err := c.getJSON(ctx, endpoint, &candidates); err != nil {
		return liveaqi.Location{}, fmt.Errorf("geocoding request failed: %w", err)
	}
	if len(candidates) == 0 {
		return liveaqi.Location{}, liveaqi.ErrCityNotFound
	}

	first := candidates[0]
	return liveaqi.Location{
		Name:    first.Name,
		Country: first.Country,
		Lat:     first.Lat,
		Lon:     first.Lon,
	}, nil
}

// FetchAirPollution retrieves the current reading and a short-horizon
// forecast for a coordinate pair. Both endpoint calls must succeed; the
// forecast is truncated to the configured sample count.
func (c *Client) FetchAirPollution(ctx context.Context, lat, lon float64) (liveaqi.PollutionData, error) {
	if c.apiKey == "" {
		return liveaqi.PollutionData{}, liveaqi.ErrNoCredential
	}

	query := fmt.Sprintf("lat=%g&lon=%g&appid=%s", lat, lon, url.QueryEscape(c.apiKey))

	var current pollutionResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/air_pollution?%s", c.pollutionBaseURL, query), &current); err != nil {
		return liveaqi.PollutionData{}, fmt.Errorf("current pollution request failed: %w", err)
	}
	if len(current.List) == 0 {
		return liveaqi.PollutionData{}, fmt.Errorf("current pollution response contained no samples")
	}

	var forecast pollutionResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/air_pollution/forecast?%s", c.pollutionBaseURL, query), &forecast); err != nil {
		return liveaqi.PollutionData{}, fmt.Errorf("forecast pollution request failed: %w", err)
	}

	samples := forecast.List
	if len(samples) > c.forecastSamples {
		samples = samples[:c.forecastSamples]
	}

	out := liveaqi.PollutionData{
		Current:  toSample(current.List[0]),
		Forecast: make([]liveaqi.PollutionSample, 0, len(samples)),
	}
	for _, entry := range samples {
		out.Forecast = append(out.Forecast, toSample(entry))
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type geoCandidate struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type pollutionResponse struct {
	List []pollutionEntry `json:"list"`
}

type pollutionEntry struct {
	Main struct {
		AQI int `json:"aqi"`
	} `json:"main"`
	// Decoded as a map so pollutants the provider omits stay absent instead
	// of defaulting to zero.
	Components map[string]float64 `json:"components"`
	Dt         int64              `json:"dt"`
}

func toSample(entry pollutionEntry) liveaqi.PollutionSample {
	sample := liveaqi.PollutionSample{
		AQI:        entry.Main.AQI,
		Components: liveaqi.PollutantSnapshot(entry.Components),
	}
	if entry.Dt > 0 {
		sample.Timestamp = time.Unix(entry.Dt, 0).UTC()
	}
	return sample
}
