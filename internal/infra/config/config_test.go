package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "gemini-flash-latest", cfg.LLM.Model)
	require.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	require.Equal(t, 10*time.Second, cfg.Weather.Timeout)
	require.Equal(t, 3, cfg.Weather.ForecastSamples)
	require.Equal(t, 30*time.Minute, cfg.Analysis.SessionTTL)
	require.Equal(t, int64(10<<20), cfg.Analysis.MaxFileBytes)
	require.Equal(t, 10, cfg.Analysis.PreviewRows)
	require.Empty(t, cfg.LLM.APIKey)
	require.Empty(t, cfg.Weather.APIKey)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
http:
  address: ":9090"
llm:
  model: gemini-pro
  timeout: 45s
weather:
  forecastSamples: 5
analysis:
  previewRows: 25
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, "gemini-pro", cfg.LLM.Model)
	require.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	require.Equal(t, 5, cfg.Weather.ForecastSamples)
	require.Equal(t, 25, cfg.Analysis.PreviewRows)
	// Untouched sections keep their defaults.
	require.Equal(t, 10*time.Second, cfg.Weather.Timeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":7070")
	t.Setenv("GOOGLE_API_KEY", "g-key")
	t.Setenv("OPENWEATHER_API_KEY", "ow-key")
	t.Setenv("LLM_TIMEOUT", "20s")
	t.Setenv("WEATHER_FORECAST_SAMPLES", "6")
	t.Setenv("ANALYSIS_SESSION_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.HTTP.Address)
	require.Equal(t, "g-key", cfg.LLM.APIKey)
	require.Equal(t, "ow-key", cfg.Weather.APIKey)
	require.Equal(t, 20*time.Second, cfg.LLM.Timeout)
	require.Equal(t, 6, cfg.Weather.ForecastSamples)
	require.Equal(t, time.Hour, cfg.Analysis.SessionTTL)
}

func TestLoadGoogleKeyWinsOverGeminiKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "google")
	t.Setenv("GEMINI_API_KEY", "gemini")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "google", cfg.LLM.APIKey)
}

func TestLoadGeminiKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "gemini", cfg.LLM.APIKey)
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [broken"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.LLM.Model = ""
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Weather.Timeout = 0
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.HTTP.RateLimit.Enabled = true
	cfg.HTTP.RateLimit.RequestsPerMinute = 0
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.HTTP.RateLimit.Enabled = false
	cfg.HTTP.RateLimit.RequestsPerMinute = 0
	require.NoError(t, cfg.Validate())
}
