package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	LLM      LLMConfig      `yaml:"llm"`
	Weather  WeatherConfig  `yaml:"weather"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LLMConfig contains Gemini settings. An empty APIKey is valid: the insight
// endpoints degrade to a displayable sentinel instead of failing startup.
type LLMConfig struct {
	APIKey  string        `yaml:"apiKey"`
	BaseURL string        `yaml:"baseUrl"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// WeatherConfig contains OpenWeather settings for geocoding and air
// pollution lookups. Like the LLM key, a missing APIKey surfaces per
// request, not at startup.
type WeatherConfig struct {
	APIKey           string        `yaml:"apiKey"`
	GeocodingBaseURL string        `yaml:"geocodingBaseUrl"`
	PollutionBaseURL string        `yaml:"pollutionBaseUrl"`
	Timeout          time.Duration `yaml:"timeout"`
	ForecastSamples  int           `yaml:"forecastSamples"`
}

// AnalysisConfig controls the dataset analysis domain.
type AnalysisConfig struct {
	SessionTTL   time.Duration `yaml:"sessionTtl"`
	MaxFileBytes int64         `yaml:"maxFileBytes"`
	PreviewRows  int           `yaml:"previewRows"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	} else if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("OPENWEATHER_GEOCODING_URL"); v != "" {
		cfg.Weather.GeocodingBaseURL = v
	}
	if v := os.Getenv("OPENWEATHER_POLLUTION_URL"); v != "" {
		cfg.Weather.PollutionBaseURL = v
	}
	if v := os.Getenv("WEATHER_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.Timeout = parsed
		}
	}
	if v := os.Getenv("WEATHER_FORECAST_SAMPLES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Weather.ForecastSamples = parsed
		}
	}
	if v := os.Getenv("ANALYSIS_SESSION_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Analysis.SessionTTL = parsed
		}
	}
	if v := os.Getenv("ANALYSIS_MAX_FILE_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Analysis.MaxFileBytes = parsed
		}
	}
	if v := os.Getenv("ANALYSIS_PREVIEW_ROWS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.PreviewRows = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		LLM: LLMConfig{
			BaseURL: "https://generativelanguage.googleapis.com/v1beta",
			Model:   "gemini-flash-latest",
			Timeout: 30 * time.Second,
		},
		Weather: WeatherConfig{
			GeocodingBaseURL: "https://api.openweathermap.org/geo/1.0",
			PollutionBaseURL: "https://api.openweathermap.org/data/2.5",
			Timeout:          10 * time.Second,
			ForecastSamples:  3,
		},
		Analysis: AnalysisConfig{
			SessionTTL:   30 * time.Minute,
			MaxFileBytes: 10 << 20,
			PreviewRows:  10,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if c.Weather.GeocodingBaseURL == "" {
		return errors.New("weather.geocodingBaseUrl cannot be empty")
	}
	if c.Weather.PollutionBaseURL == "" {
		return errors.New("weather.pollutionBaseUrl cannot be empty")
	}
	if c.Weather.Timeout <= 0 {
		return errors.New("weather.timeout must be positive")
	}
	if c.Weather.ForecastSamples <= 0 {
		return errors.New("weather.forecastSamples must be positive")
	}
	if c.Analysis.SessionTTL <= 0 {
		return errors.New("analysis.sessionTtl must be positive")
	}
	if c.Analysis.MaxFileBytes <= 0 {
		return errors.New("analysis.maxFileBytes must be positive")
	}
	if c.Analysis.PreviewRows <= 0 {
		return errors.New("analysis.previewRows must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
