package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/markdown-blog-api/pkg/logger"
	"github.com/rs/zerolog"
)

const healthTimeout = 2 * time.Second

// SystemHandler exposes health and schema information
type SystemHandler struct {
	system SystemInspector
	log    zerolog.Logger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(system SystemInspector, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		system: system,
		log:    log.With().Str("handler", "system").Logger(),
	}
}

// Health handles GET /health and GET /api/system/health.
// The service answers ok while the database status is reported separately.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, healthTimeout)
	defer cancel()

	dbStatus := "ok"
	if err := h.system.HealthCheck(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Database health check failed")
		dbStatus = "error: " + err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   logger.ServiceName,
		"timestamp": formatTime(time.Now()),
		"database":  dbStatus,
		"go":        runtime.Version(),
	})
}

// Tables handles GET /api/system/tables
func (h *SystemHandler) Tables(c *gin.Context) {
	tables, err := h.system.Tables(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to inspect tables")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"tableCount": len(tables),
		"tables":     tables,
	})
}
