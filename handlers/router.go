package handlers

import (
	"log/slog"

	"speed-camera-registry/be/config"
	"speed-camera-registry/be/middleware"
	"speed-camera-registry/be/observability"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(cameraHandler *CameraHandler, systemHandler *SystemHandler, cfg config.CORSConfig, metrics *observability.Metrics, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Metrics(metrics),
		middleware.CORS(cfg),
	)

	router.GET("/", systemHandler.Root)
	router.GET("/health", systemHandler.Health)
	router.GET("/ready", systemHandler.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	cameras := router.Group("/cameras")
	{
		cameras.GET("", cameraHandler.GetCameras)
		cameras.GET("/zipcode/:zipcode", cameraHandler.GetCamerasByZipcode)
		cameras.GET("/search", cameraHandler.SearchCameras)
		cameras.GET("/:id", cameraHandler.GetCamera)
		cameras.POST("", cameraHandler.CreateCamera)
		cameras.PUT("/:id", cameraHandler.UpdateCamera)
		cameras.DELETE("/:id", cameraHandler.DeleteCamera)
	}

	return router
}
