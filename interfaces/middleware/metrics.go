package middleware

import (
	"strconv"

	"flickr-embed/infrastructure/metrics"

	"github.com/gin-gonic/gin"
)

// ResponseMetrics counts responses by route template, method and status.
func ResponseMetrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HttpResponses.WithLabelValues(route, ctx.Request.Method, strconv.Itoa(ctx.Writer.Status())).Inc()
	}
}
