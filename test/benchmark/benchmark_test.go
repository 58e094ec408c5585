package benchmark

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/markdown-blog-api/internal/config"
	"github.com/markdown-blog-api/internal/markdown"
	"github.com/markdown-blog-api/internal/mocks"
	"github.com/markdown-blog-api/internal/models"
	"github.com/markdown-blog-api/internal/service"
	"github.com/markdown-blog-api/internal/slug"
	"github.com/markdown-blog-api/internal/validation"
	"github.com/rs/zerolog"
)

const sampleDocument = `# Release notes

Some **bold** text, some *italic* text and a [link](https://example.com).

- first item
- second item

| col | value |
|-----|-------|
| a   | 1     |

` + "```go\nfmt.Println(\"hello\")\n```\n"

func fixtures(tagCount, articleCount, tagsPerArticle int) ([]*models.Tag, []*models.Article) {
	tags := make([]*models.Tag, tagCount)
	for i := range tags {
		tags[i] = &models.Tag{ID: fmt.Sprintf("tag-%d", i), Name: fmt.Sprintf("tag %04d", i)}
	}

	articles := make([]*models.Article, articleCount)
	for i := range articles {
		ids := make([]string, tagsPerArticle)
		for j := range ids {
			ids[j] = tags[(i+j)%tagCount].ID
		}
		articles[i] = &models.Article{ID: fmt.Sprintf("article-%d", i), TagIDs: ids}
	}
	return tags, articles
}

// BenchmarkAggregateTagCounts measures stats recomputation
func BenchmarkAggregateTagCounts(b *testing.B) {
	tags, articles := fixtures(200, 5000, 5)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		service.AggregateTagCounts(tags, articles)
	}

	b.ReportMetric(float64(len(articles)*b.N)/b.Elapsed().Seconds(), "articles/sec")
}

// BenchmarkRenderCold renders distinct documents so every call misses the cache
func BenchmarkRenderCold(b *testing.B) {
	r := markdown.New()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		r.Render(fmt.Sprintf("%s\n\nrevision %d", sampleDocument, i))
	}
}

// BenchmarkRenderCached measures the cache hit path
func BenchmarkRenderCached(b *testing.B) {
	r := markdown.New()
	r.Render(sampleDocument)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		r.Render(sampleDocument)
	}
}

// BenchmarkRenderParallel exercises the cache lock under contention
func BenchmarkRenderParallel(b *testing.B) {
	r := markdown.New(markdown.WithCacheSize(16))

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			r.Render(fmt.Sprintf("## heading %d", i%32))
			i++
		}
	})
}

func BenchmarkExcerpt(b *testing.B) {
	doc := strings.Repeat(sampleDocument, 20)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		markdown.Excerpt(doc, markdown.DefaultExcerptLength)
	}
}

func BenchmarkSlug(b *testing.B) {
	names := []string{"Hello World!", "Go 語言 入門", "C++ & Go: 2024", "  Crème brûlée  "}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		slug.Make(names[i%len(names)])
	}
}

func BenchmarkValidation(b *testing.B) {
	req := &models.CreateArticleRequest{
		Title:   "A reasonably long article title",
		Content: strings.Repeat("content ", 5000),
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		validation.ValidateCreateArticle(req)
	}
}

// BenchmarkSummaries builds list-page projections over in-memory data
func BenchmarkSummaries(b *testing.B) {
	ctx := context.Background()
	repos, _, _, _ := mocks.NewMockRepositories()
	renderer := markdown.New()

	var tagIDs []string
	for i := 0; i < 20; i++ {
		tag := &models.Tag{Name: fmt.Sprintf("tag %d", i), Slug: fmt.Sprintf("tag-%d", i)}
		repos.Tag.Create(ctx, tag)
		tagIDs = append(tagIDs, tag.ID)
	}
	for i := 0; i < 500; i++ {
		repos.Article.Create(ctx, &models.Article{
			Title:   fmt.Sprintf("Article %d", i),
			Content: sampleDocument,
			TagIDs:  tagIDs[i%15 : i%15+5],
		})
	}

	cfg := &config.Config{Markdown: config.MarkdownConfig{CacheSize: 50, ExcerptLength: 200}}
	svc := service.NewServices(repos, renderer, cfg, zerolog.Nop())

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := svc.Article.Summaries(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
