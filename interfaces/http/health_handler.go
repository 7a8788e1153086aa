package http

import (
	"context"
	"net/http"
	"time"

	"flickr-embed/domain/repository"
	"flickr-embed/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

const probeTimeout = 2 * time.Second

type IHealthHandler interface {
	Healthz(c *gin.Context)
	Probe(c *gin.Context)
}

type HealthHandler struct {
	backend string
	pinger  repository.IPinger
}

// NewHealthHandler reports on the cache backend. pinger may be nil.
func NewHealthHandler(backend string, pinger repository.IPinger) IHealthHandler {
	return &HealthHandler{backend: backend, pinger: pinger}
}

// Healthz returns OK for health checks
func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Probe checks the cache backend is reachable.
func (h *HealthHandler) Probe(ctx *gin.Context) {
	if h.pinger == nil {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "backend": h.backend})
		return
	}

	probeCtx, cancel := context.WithTimeout(ctx.Request.Context(), probeTimeout)
	defer cancel()
	if err := h.pinger.Ping(probeCtx); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"backend": h.backend,
			"error":   err,
		}).Warn("Cache backend probe failed")
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "backend": h.backend, "error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "backend": h.backend})
}
