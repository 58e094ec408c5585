package service

import (
	"context"
	"sort"
	"strings"

	"github.com/markdown-blog-api/internal/models"
	"github.com/markdown-blog-api/internal/repository"
	"github.com/markdown-blog-api/internal/slug"
	"github.com/markdown-blog-api/internal/validation"
	"github.com/rs/zerolog"
)

type tagService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newTagService(repos *repository.Repositories, log zerolog.Logger) *tagService {
	return &tagService{
		repos: repos,
		log:   log.With().Str("service", "tag").Logger(),
	}
}

// List returns all tags ordered by name
func (s *tagService) List(ctx context.Context) ([]*models.Tag, error) {
	return s.repos.Tag.List(ctx)
}

// Create validates the name, rejects case-insensitive duplicates and
// stores the tag with a derived slug.
func (s *tagService) Create(ctx context.Context, req *models.CreateTagRequest) (*models.Tag, error) {
	name := strings.TrimSpace(req.Name)

	if err := validation.ValidateTag(validation.TagInput{Name: name}).Err(); err != nil {
		return nil, err
	}

	exists, err := s.repos.Tag.NameExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConstraintError("tag already exists: " + name)
	}

	tag := &models.Tag{Name: name, Slug: slug.Make(name)}
	if err := s.repos.Tag.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("tag_id", tag.ID).
		Str("slug", tag.Slug).
		Msg("Tag created")

	return tag, nil
}

// Delete removes a tag. Articles referencing it are left as they are.
func (s *tagService) Delete(ctx context.Context, id string) error {
	if err := s.repos.Tag.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("tag_id", id).Msg("Tag deleted")
	return nil
}

// Stats counts articles per tag, recomputed from current data on every call
func (s *tagService) Stats(ctx context.Context) ([]models.TagCount, error) {
	tags, err := s.repos.Tag.List(ctx)
	if err != nil {
		return nil, err
	}
	articles, err := s.repos.Article.List(ctx)
	if err != nil {
		return nil, err
	}
	return AggregateTagCounts(tags, articles), nil
}

// AggregateTagCounts pairs every tag with the number of articles that list
// it. An article counts once per tag even if the id repeats. The sort is
// stable, so tags with equal counts keep their input order.
func AggregateTagCounts(tags []*models.Tag, articles []*models.Article) []models.TagCount {
	counts := make(map[string]int, len(tags))
	for _, a := range articles {
		seen := make(map[string]bool, len(a.TagIDs))
		for _, id := range a.TagIDs {
			if !seen[id] {
				seen[id] = true
				counts[id]++
			}
		}
	}

	result := make([]models.TagCount, 0, len(tags))
	for _, t := range tags {
		result = append(result, models.TagCount{Tag: *t, Count: counts[t.ID]})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}
