package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markdown-blog-api/internal/service"
	"github.com/rs/zerolog"
)

// SettingHandler handles site settings
type SettingHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSettingHandler creates a new SettingHandler
func NewSettingHandler(services *service.Services, log zerolog.Logger) *SettingHandler {
	return &SettingHandler{
		services: services,
		log:      log.With().Str("handler", "setting").Logger(),
	}
}

// Get handles GET /api/settings
func (h *SettingHandler) Get(c *gin.Context) {
	values, err := h.services.Setting.All(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, values)
}

// Update handles POST /api/settings. Keys outside the allow-list are
// reported back but not stored.
func (h *SettingHandler) Update(c *gin.Context) {
	var values map[string]any
	if err := c.ShouldBindJSON(&values); err != nil {
		badRequest(c, h.log, "invalid request body: "+err.Error())
		return
	}

	result, err := h.services.Setting.Update(c.Request.Context(), values)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "settings updated",
		"updated": result.Updated,
		"ignored": result.Ignored,
	})
}
