package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/aqi-analyst/internal/domain/liveaqi"
)

func TestGeocodeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/direct", r.URL.Path)
		require.Equal(t, "Delhi", r.URL.Query().Get("q"))
		require.Equal(t, "1", r.URL.Query().Get("limit"))
		require.Equal(t, "test-key", r.URL.Query().Get("appid"))
		_, _ = w.Write([]byte(`[{"name":"Delhi","country":"IN","lat":28.61,"lon":77.21},{"name":"Delhi","country":"US","lat":42.0,"lon":-80.0}]`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, server.URL, time.Second, 3)
	loc, err := client.Geocode(context.Background(), "Delhi")
	require.NoError(t, err)
	require.Equal(t, "Delhi", loc.Name)
	require.Equal(t, "IN", loc.Country)
	require.Equal(t, 28.61, loc.Lat)
	require.Equal(t, 77.21, loc.Lon)
}

func TestGeocodeCityNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, server.URL, time.Second, 3)
	_, err := client.Geocode(context.Background(), "Atlantis")
	require.ErrorIs(t, err, liveaqi.ErrCityNotFound)
}

func TestGeocodeMissingCredential(t *testing.T) {
	client := NewClient("", "", "", time.Second, 3)
	_, err := client.Geocode(context.Background(), "Delhi")
	require.ErrorIs(t, err, liveaqi.ErrNoCredential)
}

func TestFetchAirPollution(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/air_pollution":
			require.Equal(t, "28.61", r.URL.Query().Get("lat"))
			require.Equal(t, "77.21", r.URL.Query().Get("lon"))
			_, _ = w.Write([]byte(`{"list":[{"main":{"aqi":4},"components":{"pm2_5":120.4,"no2":40.1},"dt":1700000000}]}`))
		case "/air_pollution/forecast":
			_, _ = w.Write([]byte(`{"list":[{"main":{"aqi":3}},{"main":{"aqi":2}},{"main":{"aqi":2}},{"main":{"aqi":1}},{"main":{"aqi":1}}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, server.URL, time.Second, 3)
	data, err := client.FetchAirPollution(context.Background(), 28.61, 77.21)
	require.NoError(t, err)
	require.Equal(t, 4, data.Current.AQI)
	require.Equal(t, 120.4, data.Current.Components["pm2_5"])
	require.Equal(t, time.Unix(1700000000, 0).UTC(), data.Current.Timestamp)

	// Forecast truncated to the configured sample count.
	require.Len(t, data.Forecast, 3)
	require.Equal(t, 3, data.Forecast[0].AQI)
	require.Equal(t, 2, data.Forecast[1].AQI)
}

func TestFetchAirPollutionOmittedComponentsStayAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/air_pollution":
			_, _ = w.Write([]byte(`{"list":[{"main":{"aqi":1},"components":{"pm2_5":8.2}}]}`))
		case "/air_pollution/forecast":
			_, _ = w.Write([]byte(`{"list":[]}`))
		}
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, server.URL, time.Second, 3)
	data, err := client.FetchAirPollution(context.Background(), 1, 2)
	require.NoError(t, err)
	_, present := data.Current.Components["no2"]
	require.False(t, present)
	require.Empty(t, data.Forecast)
}

func TestFetchAirPollutionForecastFailureFailsLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/air_pollution":
			_, _ = w.Write([]byte(`{"list":[{"main":{"aqi":2}}]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, server.URL, time.Second, 3)
	_, err := client.FetchAirPollution(context.Background(), 1, 2)
	require.Error(t, err)
	require.Contains(t, err.Error(), "forecast pollution request failed")
}

func TestFetchAirPollutionEmptyCurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"list":[]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, server.URL, time.Second, 3)
	_, err := client.FetchAirPollution(context.Background(), 1, 2)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no samples")
}

func TestFetchAirPollutionMissingCredential(t *testing.T) {
	client := NewClient("", "", "", time.Second, 3)
	_, err := client.FetchAirPollution(context.Background(), 1, 2)
	require.ErrorIs(t, err, liveaqi.ErrNoCredential)
}
