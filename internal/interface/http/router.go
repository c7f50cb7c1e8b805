package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/aqi-analyst/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		errorHandlingMiddleware(handler.logger),
		corsMiddleware(),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/datasets", handler.UploadDataset)
		api.GET("/datasets/:id", handler.GetDataset)
		api.DELETE("/datasets/:id", handler.DeleteDataset)
		api.POST("/datasets/:id/insights", handler.AnalyzeDataset)

		api.GET("/aqi/live", handler.LiveAQI)
		api.POST("/aqi/live/insights", handler.AnalyzeLive)
		api.POST("/aqi/live/compare", handler.CompareLive)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
