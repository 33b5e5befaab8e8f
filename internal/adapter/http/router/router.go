package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/adapter/http/handler"
	"github.com/syedahamedali2521/sentiment-analysis-app/internal/adapter/http/middleware"
	"github.com/syedahamedali2521/sentiment-analysis-app/internal/usecase"
)

// Setup creates and configures the Gin router. redisClient may be nil when
// the prediction cache is disabled.
func Setup(sentimentUC usecase.SentimentUsecase, redisClient *redis.Client, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handler.NewHealthHandler(sentimentUC, redisClient)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	sentimentHandler := handler.NewSentimentHandler(sentimentUC)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		sentiment := v1.Group("/sentiment")
		{
			sentiment.POST("", sentimentHandler.Predict)
			sentiment.POST("/batch", sentimentHandler.PredictBatch)
			sentiment.POST("/csv", sentimentHandler.PredictCSV)
		}
	}

	return router
}
