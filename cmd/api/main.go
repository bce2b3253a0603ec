package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"battery-params/internal/api/handlers"
	"battery-params/internal/api/middleware"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))

	estimateHandler := handlers.NewEstimateHandler(logger)
	strategyHandler := handlers.NewStrategyHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/estimate", estimateHandler.RunEstimate)
		api.POST("/estimate/compare", estimateHandler.CompareStrategies)
		api.GET("/strategies", strategyHandler.ListStrategies)
	}

	// CORS wraps the whole engine so preflight requests never reach the
	// route tree.
	handler := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(router)

	addr := fmt.Sprintf(":%s", port)
	logger.WithField("addr", addr).Info("starting API server")
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}
