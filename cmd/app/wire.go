//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/aqi-analyst/internal/bootstrap"
	"github.com/yanqian/aqi-analyst/internal/domain/insights"
	"github.com/yanqian/aqi-analyst/internal/domain/liveaqi"
	"github.com/yanqian/aqi-analyst/internal/infra/config"
	"github.com/yanqian/aqi-analyst/internal/infra/llm/gemini"
	"github.com/yanqian/aqi-analyst/internal/infra/weather/openweather"
	httpiface "github.com/yanqian/aqi-analyst/internal/interface/http"
	"github.com/yanqian/aqi-analyst/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideLiveAQIConfig,
		provideInsightsConfig,
		provideGeminiClient,
		provideWeatherClient,
		provideSessionRepository,
		provideTokenCounter,
		liveaqi.NewService,
		insights.NewService,
		wire.Bind(new(liveaqi.GeoClient), new(*openweather.Client)),
		wire.Bind(new(liveaqi.PollutionClient), new(*openweather.Client)),
		wire.Bind(new(insights.Generator), new(*gemini.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
