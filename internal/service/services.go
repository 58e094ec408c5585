package service

import (
	"context"

	"github.com/markdown-blog-api/internal/config"
	"github.com/markdown-blog-api/internal/models"
	"github.com/markdown-blog-api/internal/repository"
	"github.com/rs/zerolog"
)

// ArticleService defines the interface for article operations
type ArticleService interface {
	List(ctx context.Context) ([]*models.Article, error)
	Get(ctx context.Context, id string) (*models.Article, error)
	Create(ctx context.Context, req *models.CreateArticleRequest) (*models.Article, error)
	Update(ctx context.Context, id string, req *models.UpdateArticleRequest) (*models.Article, error)
	Delete(ctx context.Context, id string) error
	Summaries(ctx context.Context) ([]models.ArticleSummary, error)
	Rendered(ctx context.Context, id string) (*models.RenderedArticle, error)
}

// TagService defines the interface for tag operations
type TagService interface {
	List(ctx context.Context) ([]*models.Tag, error)
	Create(ctx context.Context, req *models.CreateTagRequest) (*models.Tag, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) ([]models.TagCount, error)
}

// SettingService defines the interface for site settings
type SettingService interface {
	All(ctx context.Context) (map[string]string, error)
	Update(ctx context.Context, values map[string]any) (*models.SettingsUpdateResult, error)
}

// MarkdownService renders drafts that are not stored
type MarkdownService interface {
	Preview(req *models.PreviewRequest) (*models.Preview, error)
}

// Renderer converts Markdown to sanitized HTML
type Renderer interface {
	Render(source string) string
}

// Services holds all service interfaces
type Services struct {
	Article  ArticleService
	Tag      TagService
	Setting  SettingService
	Markdown MarkdownService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, renderer Renderer, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Article:  newArticleService(repos, renderer, cfg.Markdown.ExcerptLength, log),
		Tag:      newTagService(repos, log),
		Setting:  newSettingService(repos.Setting, log),
		Markdown: newMarkdownService(renderer, cfg.Markdown.ExcerptLength),
	}
}
