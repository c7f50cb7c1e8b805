package liveaqi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/aqi-analyst/pkg/errors"
)

// Sentinel errors the weather clients return so the aggregator can
// distinguish a missing credential or unknown city from transport faults.
var (
	ErrNoCredential = errors.New("openweather api key missing")
	ErrCityNotFound = errors.New("city not found")
)

// Stable top-level messages shown to the user; the wrapped cause is kept on
// the error chain for logs.
const (
	msgCityNotFound       = "City not found."
	msgResolutionFailed   = "Failed to resolve city location."
	msgPollutionFailed    = "Failed to fetch air pollution data."
	msgWeatherKeyMissing  = "OpenWeather API key not found."
	forecastBucketFirst   = "Next 24 Hours"
	forecastBucketSecond  = "Following 24 Hours"
	defaultForecastBucket = 2
)

// Service exposes live AQI lookups.
type Service interface {
	Lookup(ctx context.Context, city string) (Record, error)
}

type GeoClient interface {
	Geocode(ctx context.Context, city string) (Location, error)
}

type PollutionClient interface {
	FetchAirPollution(ctx context.Context, lat, lon float64) (PollutionData, error)
}

type service struct {
	cfg       Config
	geo       GeoClient
	pollution PollutionClient
	logger    *slog.Logger
}

// NewService wires up the live AQI aggregator.
func NewService(cfg Config, geo GeoClient, pollution PollutionClient, logger *slog.Logger) Service {
	if cfg.ForecastBuckets <= 0 {
		cfg.ForecastBuckets = defaultForecastBucket
	}
	return &service{
		cfg:       cfg,
		geo:       geo,
		pollution: pollution,
		logger:    logger.With("component", "liveaqi.service"),
	}
}

// Lookup resolves a city name and normalizes the pollution data into a
// Record. The geocoding and pollution calls run sequentially; the first
// failure short-circuits with a category-specific error that chains the
// underlying cause.
func (s *service) Lookup(ctx context.Context, city string) (Record, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Record{}, apperrors.Wrap(apperrors.CodeInvalidInput, "city name cannot be empty", nil)
	}

	loc, err := s.geo.Geocode(ctx, city)
	if err != nil {
		return Record{}, classifyGeoError(err)
	}
	s.logger.Info("city resolved", "city", city, "name", loc.Name, "lat", loc.Lat, "lon", loc.Lon)

	data, err := s.pollution.FetchAirPollution(ctx, loc.Lat, loc.Lon)
	if err != nil {
		if errors.Is(err, ErrNoCredential) {
			return Record{}, apperrors.Wrap(apperrors.CodeCredentialMissing, msgWeatherKeyMissing, err)
		}
		return Record{}, apperrors.Wrap(apperrors.CodePollutionUnavailable, msgPollutionFailed, err)
	}

	record := Record{
		Location:     loc,
		AQI:          data.Current.AQI,
		Category:     CategoryFor(data.Current.AQI),
		Components:   data.Current.Components,
		Forecast:     data.Forecast,
		ForecastText: s.forecastText(data.Current.AQI, data.Forecast),
	}
	s.logger.Info("live aqi lookup complete", "city", loc.Name, "aqi", record.AQI, "category", record.Category)
	return record, nil
}

func classifyGeoError(err error) error {
	switch {
	case errors.Is(err, ErrNoCredential):
		return apperrors.Wrap(apperrors.CodeCredentialMissing, msgWeatherKeyMissing, err)
	case errors.Is(err, ErrCityNotFound):
		return apperrors.Wrap(apperrors.CodeResolutionFailed, msgCityNotFound, err)
	default:
		return apperrors.Wrap(apperrors.CodeTransportFailure, msgResolutionFailed, err)
	}
}

// forecastText renders the two display buckets. When fewer forecast samples
// exist than buckets, the current category fills the gap. The bucket names
// approximate the provider horizon; they are labels, not guarantees.
func (s *service) forecastText(currentCode int, forecast []PollutionSample) string {
	labels := []string{forecastBucketFirst, forecastBucketSecond}
	if s.cfg.ForecastBuckets < len(labels) {
		labels = labels[:s.cfg.ForecastBuckets]
	}

	lines := make([]string, 0, len(labels))
	for i, label := range labels {
		code := currentCode
		if i < len(forecast) {
			code = forecast[i].AQI
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, CategoryFor(code)))
	}
	return strings.Join(lines, "\n")
}
