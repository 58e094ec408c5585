package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"github.com/markdown-blog-api/internal/models"
	"github.com/markdown-blog-api/internal/service"
	"github.com/rs/zerolog"
)

// MarkdownHandler serves rendered HTML
type MarkdownHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewMarkdownHandler creates a new MarkdownHandler
func NewMarkdownHandler(services *service.Services, log zerolog.Logger) *MarkdownHandler {
	return &MarkdownHandler{
		services: services,
		log:      log.With().Str("handler", "markdown").Logger(),
	}
}

// etag is a strong validator derived from the rendered html
func etag(html string) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64String(html))
}

// etagMatches reports whether an If-None-Match header matches tag using
// weak comparison. The header may be "*" or a comma-separated list.
func etagMatches(header, tag string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}
	want := strings.TrimPrefix(tag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == want {
			return true
		}
	}
	return false
}

// ArticleHTML handles GET /api/articles/:id/html
func (h *MarkdownHandler) ArticleHTML(c *gin.Context) {
	rendered, err := h.services.Article.Rendered(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	tag := etag(rendered.HTML)
	c.Header("ETag", tag)
	if etagMatches(c.GetHeader("If-None-Match"), tag) {
		c.Status(http.StatusNotModified)
		return
	}

	c.JSON(http.StatusOK, renderedResponse{
		ID:        rendered.ID,
		Title:     rendered.Title,
		HTML:      rendered.HTML,
		UpdatedAt: formatTime(rendered.UpdatedAt),
	})
}

// Preview handles POST /api/markdown/preview
func (h *MarkdownHandler) Preview(c *gin.Context) {
	var req models.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body: "+err.Error())
		return
	}

	preview, err := h.services.Markdown.Preview(&req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}
