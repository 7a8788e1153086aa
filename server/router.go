package server

import (
	"time"

	httpHandler "flickr-embed/interfaces/http"
	"flickr-embed/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitiateRouter(
	embedHandler httpHandler.IEmbedHandler,
	healthHandler httpHandler.IHealthHandler,
	secretKey string,
	allowOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ResponseMetrics())

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", healthHandler.Healthz)
	router.POST("/healthz", healthHandler.Probe)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/embed/:id", embedHandler.Preview)

	api := router.Group("api")
	api.Use(middleware.Auth(secretKey))
	api.POST("/tags/:name/render", embedHandler.RenderTag)
	api.POST("/expand", embedHandler.Expand)

	return router
}
