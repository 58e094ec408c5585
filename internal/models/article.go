package models

import (
	"time"
)

// Article is a blog post stored in Markdown
type Article struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	TagIDs    []string  `json:"tagIds" db:"-"` // Stored as JSON in DB
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

const (
	MaxTitleLength   = 200
	MaxContentLength = 50000
)

// CreateArticleRequest is the body of POST /api/articles
type CreateArticleRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	TagIDs  []string `json:"tagIds"`
}

// UpdateArticleRequest is the body of PUT /api/articles/:id.
// Nil fields were absent from the payload and are left untouched.
type UpdateArticleRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	TagIDs  *[]string `json:"tagIds"`
}

// ArticlePatch is the set of columns an update writes
type ArticlePatch struct {
	Title   *string
	Content *string
	TagIDs  *[]string
}

// IsEmpty reports whether the patch carries no field changes
func (p ArticlePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.TagIDs == nil
}

// ArticleSummary is a list-page projection of an article
type ArticleSummary struct {
	ID        string
	Title     string
	Excerpt   string
	CreatedAt time.Time
	Tags      []Tag
}

// RenderedArticle carries the sanitized HTML of an article
type RenderedArticle struct {
	ID        string
	Title     string
	HTML      string
	UpdatedAt time.Time
}
