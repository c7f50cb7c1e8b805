package main

import (
	"github.com/yanqian/aqi-analyst/internal/domain/insights"
	"github.com/yanqian/aqi-analyst/internal/domain/liveaqi"
	"github.com/yanqian/aqi-analyst/internal/infra/config"
	"github.com/yanqian/aqi-analyst/internal/infra/llm/gemini"
	"github.com/yanqian/aqi-analyst/internal/infra/sessionstore"
	"github.com/yanqian/aqi-analyst/internal/infra/tokenizer"
	"github.com/yanqian/aqi-analyst/internal/infra/weather/openweather"
)

func provideGeminiClient(cfg *config.Config) *gemini.Client {
	return gemini.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.Timeout)
}

func provideWeatherClient(cfg *config.Config) *openweather.Client {
	return openweather.NewClient(
		cfg.Weather.APIKey,
		cfg.Weather.GeocodingBaseURL,
		cfg.Weather.PollutionBaseURL,
		cfg.Weather.Timeout,
		cfg.Weather.ForecastSamples,
	)
}

func provideLiveAQIConfig(cfg *config.Config) liveaqi.Config {
	return liveaqi.Config{}
}

func provideInsightsConfig(cfg *config.Config) insights.Config {
	return insights.Config{
		MaxFileBytes: cfg.Analysis.MaxFileBytes,
		PreviewRows:  cfg.Analysis.PreviewRows,
		SessionTTL:   cfg.Analysis.SessionTTL,
	}
}

func provideSessionRepository(cfg *config.Config) insights.SessionRepository {
	return sessionstore.NewMemoryStore(cfg.Analysis.SessionTTL)
}

func provideTokenCounter() insights.TokenCounter {
	return tokenizer.NewEstimator()
}
