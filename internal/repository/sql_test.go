package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/markdown-blog-api/internal/database"
	"github.com/markdown-blog-api/internal/models"
	"github.com/rs/zerolog"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixedIDs struct{ id string }

func (f fixedIDs) NewID() string { return f.id }

func fixedClock() time.Time { return fixedNow }

func newSQLMock(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("Unmet expectations: %v", err)
		}
		db.Close()
	})
	return database.Wrap(db, zerolog.Nop()), mock
}

func exact(query string) string {
	return "^" + regexp.QuoteMeta(query) + "$"
}

var articleCols = []string{"id", "title", "content", "tag_ids", "created_at", "updated_at"}

func articleRow(title, content, tags string) *sqlmock.Rows {
	return sqlmock.NewRows(articleCols).
		AddRow("a1", title, content, []byte(tags), fixedNow.Add(-time.Hour), fixedNow)
}

func TestArticleRepo_UpdateBuildsPartialSet(t *testing.T) {
	title := "New title"
	content := "New content"
	tags := []string{"t1", "t2"}

	tests := []struct {
		name  string
		patch models.ArticlePatch
		query string
		args  []driver.Value
	}{
		{
			name:  "title only",
			patch: models.ArticlePatch{Title: &title},
			query: "UPDATE articles SET title = $1, updated_at = $2 WHERE id = $3 RETURNING " + articleColumns,
			args:  []driver.Value{title, fixedNow, "a1"},
		},
		{
			name:  "content only",
			patch: models.ArticlePatch{Content: &content},
			query: "UPDATE articles SET content = $1, updated_at = $2 WHERE id = $3 RETURNING " + articleColumns,
			args:  []driver.Value{content, fixedNow, "a1"},
		},
		{
			name:  "tag ids only",
			patch: models.ArticlePatch{TagIDs: &tags},
			query: "UPDATE articles SET tag_ids = $1, updated_at = $2 WHERE id = $3 RETURNING " + articleColumns,
			args:  []driver.Value{`["t1","t2"]`, fixedNow, "a1"},
		},
		{
			name:  "empty patch refreshes timestamp",
			patch: models.ArticlePatch{},
			query: "UPDATE articles SET updated_at = $1 WHERE id = $2 RETURNING " + articleColumns,
			args:  []driver.Value{fixedNow, "a1"},
		},
		{
			name:  "all fields",
			patch: models.ArticlePatch{Title: &title, Content: &content, TagIDs: &tags},
			query: "UPDATE articles SET title = $1, content = $2, tag_ids = $3, updated_at = $4 WHERE id = $5 RETURNING " + articleColumns,
			args:  []driver.Value{title, content, `["t1","t2"]`, fixedNow, "a1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newSQLMock(t)
			repo := NewArticleRepo(db, fixedIDs{"unused"}, fixedClock)

			mock.ExpectQuery(exact(tt.query)).
				WithArgs(tt.args...).
				WillReturnRows(articleRow("stored", "body", `["t1"]`))

			article, err := repo.Update(context.Background(), "a1", tt.patch)
			if err != nil {
				t.Fatalf("Update failed: %v", err)
			}
			if article.ID != "a1" || article.Title != "stored" {
				t.Errorf("Expected the returned row, got %+v", article)
			}
			if len(article.TagIDs) != 1 || article.TagIDs[0] != "t1" {
				t.Errorf("Expected decoded tag ids, got %v", article.TagIDs)
			}
		})
	}
}

func TestArticleRepo_UpdateMissing(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewArticleRepo(db, fixedIDs{"unused"}, fixedClock)

	title := "x"
	mock.ExpectQuery("UPDATE articles SET title").
		WillReturnRows(sqlmock.NewRows(articleCols))

	_, err := repo.Update(context.Background(), "missing", models.ArticlePatch{Title: &title})
	if !models.IsNotFound(err) {
		t.Fatalf("Expected not found, got %v", err)
	}
}

func TestArticleRepo_Create(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewArticleRepo(db, fixedIDs{"a1"}, fixedClock)

	mock.ExpectExec(exact("INSERT INTO articles (id, title, content, tag_ids, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)")).
		WithArgs("a1", "T", "C", "[]", fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	article := &models.Article{Title: "T", Content: "C"}
	if err := repo.Create(context.Background(), article); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if article.ID != "a1" || !article.CreatedAt.Equal(fixedNow) || !article.UpdatedAt.Equal(fixedNow) {
		t.Errorf("Expected assigned id and timestamps, got %+v", article)
	}
	if article.TagIDs == nil {
		t.Error("Expected empty tag list")
	}
}

func TestArticleRepo_GetByID(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewArticleRepo(db, fixedIDs{"unused"}, fixedClock)
	query := exact("SELECT " + articleColumns + " FROM articles WHERE id = $1")

	mock.ExpectQuery(query).WithArgs("a1").WillReturnRows(articleRow("T", "C", `[]`))
	mock.ExpectQuery(query).WithArgs("missing").WillReturnRows(sqlmock.NewRows(articleCols))
	mock.ExpectQuery(query).WithArgs("broken").WillReturnError(errors.New("connection reset"))

	article, err := repo.GetByID(context.Background(), "a1")
	if err != nil || article == nil || article.Title != "T" {
		t.Fatalf("Expected article, got %+v, %v", article, err)
	}

	article, err = repo.GetByID(context.Background(), "missing")
	if err != nil || article != nil {
		t.Errorf("Expected nil, nil for missing row, got %+v, %v", article, err)
	}

	if _, err := repo.GetByID(context.Background(), "broken"); err == nil || err.Error() != "connection reset" {
		t.Errorf("Expected passthrough error, got %v", err)
	}
}

func TestArticleRepo_Delete(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewArticleRepo(db, fixedIDs{"unused"}, fixedClock)
	query := exact("DELETE FROM articles WHERE id = $1")

	mock.ExpectExec(query).WithArgs("a1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "a1"); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if err := repo.Delete(context.Background(), "missing"); !models.IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}
}

var tagCols = []string{"id", "name", "slug", "created_at"}

func TestTagRepo_Create(t *testing.T) {
	existsQuery := exact("SELECT EXISTS(SELECT 1 FROM tags WHERE LOWER(name) = LOWER($1))")
	insertQuery := exact("INSERT INTO tags (id, name, slug, created_at) VALUES ($1, $2, $3, $4)")

	t.Run("inserts", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewTagRepo(db, fixedIDs{"t1"}, fixedClock)

		mock.ExpectQuery(existsQuery).WithArgs("Go").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(insertQuery).WithArgs("t1", "Go", "go", fixedNow).
			WillReturnResult(sqlmock.NewResult(0, 1))

		tag := &models.Tag{Name: "Go", Slug: "go"}
		if err := repo.Create(context.Background(), tag); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if tag.ID != "t1" || !tag.CreatedAt.Equal(fixedNow) {
			t.Errorf("Expected assigned fields, got %+v", tag)
		}
	})

	t.Run("existing name", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewTagRepo(db, fixedIDs{"t1"}, fixedClock)

		mock.ExpectQuery(existsQuery).WithArgs("go").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.Create(context.Background(), &models.Tag{Name: "go", Slug: "go"})
		if models.KindOf(err) != models.KindConstraint {
			t.Errorf("Expected constraint error, got %v", err)
		}
	})

	t.Run("unique violation on insert", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewTagRepo(db, fixedIDs{"t1"}, fixedClock)

		mock.ExpectQuery(existsQuery).WithArgs("Go").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(insertQuery).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})

		err := repo.Create(context.Background(), &models.Tag{Name: "Go", Slug: "go"})
		if models.KindOf(err) != models.KindConstraint {
			t.Errorf("Expected constraint error, got %v", err)
		}
	})

	t.Run("other insert failure", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewTagRepo(db, fixedIDs{"t1"}, fixedClock)

		mock.ExpectQuery(existsQuery).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(insertQuery).WillReturnError(errors.New("disk full"))

		err := repo.Create(context.Background(), &models.Tag{Name: "Go", Slug: "go"})
		if err == nil || models.KindOf(err) != models.KindInternal {
			t.Errorf("Expected internal error, got %v", err)
		}
	})
}

func TestTagRepo_ListAndGetByIDs(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewTagRepo(db, fixedIDs{"unused"}, fixedClock)

	mock.ExpectQuery(exact("SELECT " + tagColumns + " FROM tags ORDER BY name ASC")).
		WillReturnRows(sqlmock.NewRows(tagCols).
			AddRow("t2", "A", "a", fixedNow).
			AddRow("t1", "B", "b", fixedNow))
	mock.ExpectQuery(exact("SELECT " + tagColumns + " FROM tags WHERE id = ANY($1) ORDER BY name")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(tagCols).AddRow("t1", "B", "b", fixedNow))

	tags, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tags) != 2 || tags[0].Name != "A" || tags[1].Name != "B" {
		t.Errorf("Unexpected tags %+v", tags)
	}

	tags, err = repo.GetByIDs(context.Background(), []string{"t1", "gone"})
	if err != nil {
		t.Fatalf("GetByIDs failed: %v", err)
	}
	if len(tags) != 1 || tags[0].ID != "t1" {
		t.Errorf("Unexpected tags %+v", tags)
	}

	// no ids means no query
	tags, err = repo.GetByIDs(context.Background(), nil)
	if err != nil || tags == nil || len(tags) != 0 {
		t.Errorf("Expected empty slice, got %v, %v", tags, err)
	}
}

func TestTagRepo_Delete(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewTagRepo(db, fixedIDs{"unused"}, fixedClock)
	query := exact("DELETE FROM tags WHERE id = $1")

	mock.ExpectExec(query).WithArgs("t1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "t1"); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if err := repo.Delete(context.Background(), "missing"); !models.IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestSettingRepo_Upsert(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewSettingRepo(db, fixedClock)

	mock.ExpectExec(exact("INSERT INTO settings (key, value, created_at, updated_at) VALUES ($1, $2, $3, $3) " +
		"ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at")).
		WithArgs("blog_title", "Notes", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Upsert(context.Background(), "blog_title", "Notes"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
}

func TestSettingRepo_GetAndList(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewSettingRepo(db, fixedClock)
	cols := []string{"key", "value", "created_at", "updated_at"}

	mock.ExpectQuery(exact("SELECT key, value, created_at, updated_at FROM settings WHERE key = $1")).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(exact("SELECT key, value, created_at, updated_at FROM settings ORDER BY key")).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("blog_description", "d", fixedNow, fixedNow).
			AddRow("blog_title", "t", fixedNow, fixedNow))

	setting, err := repo.Get(context.Background(), "nope")
	if err != nil || setting != nil {
		t.Errorf("Expected nil, nil, got %+v, %v", setting, err)
	}

	settings, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(settings) != 2 || settings[1].Key != "blog_title" {
		t.Errorf("Unexpected settings %+v", settings)
	}
}
