package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/markdown-blog-api/internal/database"
	"github.com/markdown-blog-api/internal/models"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	List(ctx context.Context) ([]*models.Article, error)
	Update(ctx context.Context, id string, patch models.ArticlePatch) (*models.Article, error)
	Delete(ctx context.Context, id string) error
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Tag, error)
	List(ctx context.Context) ([]*models.Tag, error)
	NameExists(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// SettingRepository defines the interface for key-value settings
type SettingRepository interface {
	List(ctx context.Context) ([]*models.Setting, error)
	Get(ctx context.Context, key string) (*models.Setting, error)
	Upsert(ctx context.Context, key, value string) error
}

// IDGenerator produces opaque unique identifiers for new rows
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random version 4 UUIDs
type UUIDGenerator struct{}

// NewID returns a new UUID string
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Clock returns the timestamp stamped on writes
type Clock func() time.Time

// SystemClock is local time at second resolution
func SystemClock() time.Time {
	return time.Now().Truncate(time.Second)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
	Tag     TagRepository
	Setting SettingRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB, ids IDGenerator, clock Clock) *Repositories {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if clock == nil {
		clock = SystemClock
	}
	return &Repositories{
		Article: NewArticleRepo(db, ids, clock),
		Tag:     NewTagRepo(db, ids, clock),
		Setting: NewSettingRepo(db, clock),
	}
}
