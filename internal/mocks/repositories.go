package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/markdown-blog-api/internal/models"
	"github.com/markdown-blog-api/internal/repository"
)

// Verify interface compliance
var (
	_ repository.ArticleRepository = (*MockArticleRepository)(nil)
	_ repository.TagRepository     = (*MockTagRepository)(nil)
	_ repository.SettingRepository = (*MockSettingRepository)(nil)
	_ repository.IDGenerator       = (*MockIDGenerator)(nil)
)

// MockIDGenerator issues sequential ids with a prefix
type MockIDGenerator struct {
	Prefix string
	next   int
}

func (g *MockIDGenerator) NewID() string {
	g.next++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, g.next)
}

// MockClock is a settable clock. Each call to Now returns the current value
// and then advances it by Step.
type MockClock struct {
	Current time.Time
	Step    time.Duration
}

func NewMockClock() *MockClock {
	return &MockClock{
		Current: time.Date(2024, 1, 15, 10, 0, 0, 0, time.Local),
		Step:    time.Second,
	}
}

func (c *MockClock) Now() time.Time {
	now := c.Current
	c.Current = c.Current.Add(c.Step)
	return now
}

// MockArticleRepository is an in-memory ArticleRepository
type MockArticleRepository struct {
	Articles map[string]*models.Article
	order    []string
	ids      repository.IDGenerator
	clock    repository.Clock

	// Err, when set, is returned by every method
	Err         error
	UpdateCalls int
}

func NewMockArticleRepository(ids repository.IDGenerator, clock repository.Clock) *MockArticleRepository {
	if ids == nil {
		ids = &MockIDGenerator{Prefix: "article"}
	}
	if clock == nil {
		clock = NewMockClock().Now
	}
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
		ids:      ids,
		clock:    clock,
	}
}

func copyArticle(a *models.Article) *models.Article {
	c := *a
	c.TagIDs = append([]string{}, a.TagIDs...)
	return &c
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.Err != nil {
		return m.Err
	}
	now := m.clock()
	article.ID = m.ids.NewID()
	article.CreatedAt = now
	article.UpdatedAt = now
	if article.TagIDs == nil {
		article.TagIDs = []string{}
	}
	m.Articles[article.ID] = copyArticle(article)
	m.order = append(m.order, article.ID)
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	return copyArticle(a), nil
}

func (m *MockArticleRepository) List(ctx context.Context) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	articles := make([]*models.Article, 0, len(m.order))
	for _, id := range m.order {
		articles = append(articles, copyArticle(m.Articles[id]))
	}
	return articles, nil
}

func (m *MockArticleRepository) Update(ctx context.Context, id string, patch models.ArticlePatch) (*models.Article, error) {
	m.UpdateCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.Articles[id]
	if !ok {
		return nil, models.NewNotFoundError("article", id)
	}
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Content != nil {
		a.Content = *patch.Content
	}
	if patch.TagIDs != nil {
		a.TagIDs = append([]string{}, *patch.TagIDs...)
	}
	a.UpdatedAt = m.clock()
	return copyArticle(a), nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Articles[id]; !ok {
		return models.NewNotFoundError("article", id)
	}
	delete(m.Articles, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// MockTagRepository is an in-memory TagRepository
type MockTagRepository struct {
	Tags  map[string]*models.Tag
	ids   repository.IDGenerator
	clock repository.Clock

	Err         error
	CreateCalls int
}

func NewMockTagRepository(ids repository.IDGenerator, clock repository.Clock) *MockTagRepository {
	if ids == nil {
		ids = &MockIDGenerator{Prefix: "tag"}
	}
	if clock == nil {
		clock = NewMockClock().Now
	}
	return &MockTagRepository{
		Tags:  make(map[string]*models.Tag),
		ids:   ids,
		clock: clock,
	}
}

func (m *MockTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	m.CreateCalls++
	if m.Err != nil {
		return m.Err
	}
	if exists, _ := m.NameExists(ctx, tag.Name); exists {
		return models.NewConstraintError("tag already exists: " + tag.Name)
	}
	tag.ID = m.ids.NewID()
	tag.CreatedAt = m.clock()
	c := *tag
	m.Tags[tag.ID] = &c
	return nil
}

func (m *MockTagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	t, ok := m.Tags[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (m *MockTagRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Tag, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	seen := make(map[string]bool, len(ids))
	tags := []*models.Tag{}
	for _, id := range ids {
		if t, ok := m.Tags[id]; ok && !seen[id] {
			seen[id] = true
			c := *t
			tags = append(tags, &c)
		}
	}
	sortTagsByName(tags)
	return tags, nil
}

func (m *MockTagRepository) List(ctx context.Context) ([]*models.Tag, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	tags := make([]*models.Tag, 0, len(m.Tags))
	for _, t := range m.Tags {
		c := *t
		tags = append(tags, &c)
	}
	sortTagsByName(tags)
	return tags, nil
}

func (m *MockTagRepository) NameExists(ctx context.Context, name string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, t := range m.Tags {
		if strings.EqualFold(t.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTagRepository) Delete(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Tags[id]; !ok {
		return models.NewNotFoundError("tag", id)
	}
	delete(m.Tags, id)
	return nil
}

func sortTagsByName(tags []*models.Tag) {
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Name == tags[j].Name {
			return tags[i].ID < tags[j].ID
		}
		return tags[i].Name < tags[j].Name
	})
}

// MockSettingRepository is an in-memory SettingRepository
type MockSettingRepository struct {
	Settings map[string]*models.Setting
	clock    repository.Clock

	Err         error
	UpsertCalls int
}

func NewMockSettingRepository(clock repository.Clock) *MockSettingRepository {
	if clock == nil {
		clock = NewMockClock().Now
	}
	return &MockSettingRepository{
		Settings: make(map[string]*models.Setting),
		clock:    clock,
	}
}

func (m *MockSettingRepository) List(ctx context.Context) ([]*models.Setting, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	settings := make([]*models.Setting, 0, len(m.Settings))
	for _, s := range m.Settings {
		c := *s
		settings = append(settings, &c)
	}
	sort.Slice(settings, func(i, j int) bool {
		return settings[i].Key < settings[j].Key
	})
	return settings, nil
}

func (m *MockSettingRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.Settings[key]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (m *MockSettingRepository) Upsert(ctx context.Context, key, value string) error {
	m.UpsertCalls++
	if m.Err != nil {
		return m.Err
	}
	now := m.clock()
	if s, ok := m.Settings[key]; ok {
		s.Value = value
		s.UpdatedAt = now
		return nil
	}
	m.Settings[key] = &models.Setting{Key: key, Value: value, CreatedAt: now, UpdatedAt: now}
	return nil
}

// NewMockRepositories wires in-memory repositories sharing one clock
func NewMockRepositories() (*repository.Repositories, *MockArticleRepository, *MockTagRepository, *MockSettingRepository) {
	clock := NewMockClock()
	articles := NewMockArticleRepository(&MockIDGenerator{Prefix: "article"}, clock.Now)
	tags := NewMockTagRepository(&MockIDGenerator{Prefix: "tag"}, clock.Now)
	settings := NewMockSettingRepository(clock.Now)
	return &repository.Repositories{Article: articles, Tag: tags, Setting: settings}, articles, tags, settings
}
