package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/markdown-blog-api/internal/database"
	"github.com/markdown-blog-api/internal/models"
)

const articleColumns = "id, title, content, tag_ids, created_at, updated_at"

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db    *database.DB
	ids   IDGenerator
	clock Clock
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB, ids IDGenerator, clock Clock) ArticleRepository {
	return &articleRepo{db: db, ids: ids, clock: clock}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var article models.Article
	var tagsJSON []byte

	err := row.Scan(
		&article.ID, &article.Title, &article.Content, &tagsJSON,
		&article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	article.TagIDs = decodeTagIDs(tagsJSON)
	return &article, nil
}

func encodeTagIDs(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(ids)
}

func decodeTagIDs(raw []byte) []string {
	ids := []string{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &ids); err != nil || ids == nil {
			ids = []string{}
		}
	}
	return ids
}

// Create assigns id and timestamps, then inserts the article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	now := r.clock()
	article.ID = r.ids.NewID()
	article.CreatedAt = now
	article.UpdatedAt = now
	if article.TagIDs == nil {
		article.TagIDs = []string{}
	}

	tagsJSON, err := encodeTagIDs(article.TagIDs)
	if err != nil {
		return fmt.Errorf("failed to encode tag ids: %w", err)
	}

	query := `
		INSERT INTO articles (id, title, content, tag_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Content, string(tagsJSON),
		article.CreatedAt, article.UpdatedAt,
	)
	return err
}

// GetByID retrieves an article by ID, returning nil when absent
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles WHERE id = $1"

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// List returns all articles in insertion order
func (r *articleRepo) List(ctx context.Context) ([]*models.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles ORDER BY created_at, id"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []*models.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// Update writes only the fields present in patch and refreshes updated_at
func (r *articleRepo) Update(ctx context.Context, id string, patch models.ArticlePatch) (*models.Article, error) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Content != nil {
		add("content", *patch.Content)
	}
	if patch.TagIDs != nil {
		tagsJSON, err := encodeTagIDs(*patch.TagIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to encode tag ids: %w", err)
		}
		add("tag_ids", string(tagsJSON))
	}
	add("updated_at", r.clock())

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE articles SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), articleColumns,
	)

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("article", id)
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes an article by ID
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.NewNotFoundError("article", id)
	}
	return nil
}
