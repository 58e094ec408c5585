package service

import (
	"context"
	"strings"

	"github.com/markdown-blog-api/internal/markdown"
	"github.com/markdown-blog-api/internal/models"
	"github.com/markdown-blog-api/internal/repository"
	"github.com/markdown-blog-api/internal/validation"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repos         *repository.Repositories
	renderer      Renderer
	excerptLength int
	log           zerolog.Logger
}

func newArticleService(repos *repository.Repositories, renderer Renderer, excerptLength int, log zerolog.Logger) *articleService {
	return &articleService{
		repos:         repos,
		renderer:      renderer,
		excerptLength: excerptLength,
		log:           log.With().Str("service", "article").Logger(),
	}
}

// List returns every article in creation order
func (s *articleService) List(ctx context.Context) ([]*models.Article, error) {
	return s.repos.Article.List(ctx)
}

// Get returns a single article or a not-found error
func (s *articleService) Get(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, models.NewNotFoundError("article", id)
	}
	return article, nil
}

// Create validates and stores a new article
func (s *articleService) Create(ctx context.Context, req *models.CreateArticleRequest) (*models.Article, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)

	if err := validation.ValidateCreateArticle(req).Err(); err != nil {
		return nil, err
	}

	article := &models.Article{
		Title:   req.Title,
		Content: req.Content,
		TagIDs:  req.TagIDs,
	}
	if article.TagIDs == nil {
		article.TagIDs = []string{}
	}

	if err := s.repos.Article.Create(ctx, article); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("article_id", article.ID).
		Int("tags", len(article.TagIDs)).
		Msg("Article created")

	return article, nil
}

// Update applies the fields present in req. Validation and the existence
// check both run before anything is written.
func (s *articleService) Update(ctx context.Context, id string, req *models.UpdateArticleRequest) (*models.Article, error) {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		req.Content = &content
	}

	if err := validation.ValidateUpdateArticle(req).Err(); err != nil {
		return nil, err
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	article, err := s.repos.Article.Update(ctx, id, models.ArticlePatch{
		Title:   req.Title,
		Content: req.Content,
		TagIDs:  req.TagIDs,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("article_id", id).Msg("Article updated")
	return article, nil
}

// Delete removes an article
func (s *articleService) Delete(ctx context.Context, id string) error {
	if err := s.repos.Article.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("article_id", id).Msg("Article deleted")
	return nil
}

// Summaries returns list-page projections with excerpts and resolved tags.
// Tag references that no longer resolve are skipped.
func (s *articleService) Summaries(ctx context.Context) ([]models.ArticleSummary, error) {
	articles, err := s.repos.Article.List(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, a := range articles {
		ids = append(ids, a.TagIDs...)
	}

	tags, err := s.repos.Tag.GetByIDs(ctx, uniqueStrings(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Tag, len(tags))
	for _, t := range tags {
		byID[t.ID] = *t
	}

	summaries := make([]models.ArticleSummary, 0, len(articles))
	for _, a := range articles {
		resolved := []models.Tag{}
		for _, id := range uniqueStrings(a.TagIDs) {
			if t, ok := byID[id]; ok {
				resolved = append(resolved, t)
			}
		}
		summaries = append(summaries, models.ArticleSummary{
			ID:        a.ID,
			Title:     a.Title,
			Excerpt:   markdown.Excerpt(a.Content, s.excerptLength),
			CreatedAt: a.CreatedAt,
			Tags:      resolved,
		})
	}
	return summaries, nil
}

// Rendered returns the sanitized HTML of an article
func (s *articleService) Rendered(ctx context.Context, id string) (*models.RenderedArticle, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.RenderedArticle{
		ID:        article.ID,
		Title:     article.Title,
		HTML:      s.renderer.Render(article.Content),
		UpdatedAt: article.UpdatedAt,
	}, nil
}

// uniqueStrings keeps the first occurrence of each value
func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
