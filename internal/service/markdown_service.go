package service

import (
	"fmt"
	"unicode/utf8"

	"github.com/markdown-blog-api/internal/markdown"
	"github.com/markdown-blog-api/internal/models"
)

type markdownService struct {
	renderer      Renderer
	excerptLength int
}

func newMarkdownService(renderer Renderer, excerptLength int) *markdownService {
	return &markdownService{renderer: renderer, excerptLength: excerptLength}
}

// Preview renders a draft and its excerpt without storing anything
func (s *markdownService) Preview(req *models.PreviewRequest) (*models.Preview, error) {
	if n := utf8.RuneCountInString(req.Content); n > models.MaxContentLength {
		msg := fmt.Sprintf("content must be at most %d characters (has %d)", models.MaxContentLength, n)
		return nil, models.NewValidationError(msg)
	}

	length := req.ExcerptLength
	if length <= 0 {
		length = s.excerptLength
	}

	return &models.Preview{
		HTML:    s.renderer.Render(req.Content),
		Excerpt: markdown.Excerpt(req.Content, length),
	}, nil
}
