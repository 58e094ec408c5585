package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/markdown-blog-api/internal/models"
	"github.com/rs/zerolog"
)

// TimeLayout is the wire format for every timestamp in responses
const TimeLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

type articleResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	TagIDs    []string `json:"tagIds"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

func newArticleResponse(a *models.Article) articleResponse {
	tagIDs := a.TagIDs
	if tagIDs == nil {
		tagIDs = []string{}
	}
	return articleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		TagIDs:    tagIDs,
		CreatedAt: formatTime(a.CreatedAt),
		UpdatedAt: formatTime(a.UpdatedAt),
	}
}

type tagResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedAt string `json:"createdAt"`
}

func newTagResponse(t *models.Tag) tagResponse {
	return tagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		CreatedAt: formatTime(t.CreatedAt),
	}
}

type tagRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type tagStatResponse struct {
	Tag   tagRef `json:"tag"`
	Count int    `json:"count"`
}

type summaryResponse struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Excerpt   string        `json:"excerpt"`
	CreatedAt string        `json:"createdAt"`
	Tags      []tagResponse `json:"tags"`
}

func newSummaryResponse(s models.ArticleSummary) summaryResponse {
	tags := make([]tagResponse, 0, len(s.Tags))
	for i := range s.Tags {
		tags = append(tags, newTagResponse(&s.Tags[i]))
	}
	return summaryResponse{
		ID:        s.ID,
		Title:     s.Title,
		Excerpt:   s.Excerpt,
		CreatedAt: formatTime(s.CreatedAt),
		Tags:      tags,
	}
}

type renderedResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	HTML      string `json:"html"`
	UpdatedAt string `json:"updatedAt"`
}

// statusFor maps an error kind to its HTTP status
func statusFor(kind models.ErrorKind) int {
	switch kind {
	case models.KindValidation, models.KindConstraint:
		return http.StatusBadRequest
	case models.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error", "kind", "details"} with the matching status
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	kind := models.KindOf(err)
	status := statusFor(kind)

	body := gin.H{"error": err.Error(), "kind": kind}
	var appErr *models.AppError
	if errors.As(err, &appErr) && len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	}
	c.JSON(status, body)
}

// badRequest reports an unparsable body
func badRequest(c *gin.Context, log zerolog.Logger, message string) {
	respondError(c, log, models.NewValidationError(message))
}
