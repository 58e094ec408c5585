package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/markdown-blog-api/internal/database"
	"github.com/markdown-blog-api/internal/models"
)

const tagColumns = "id, name, slug, created_at"

type tagRepo struct {
	db    *database.DB
	ids   IDGenerator
	clock Clock
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db *database.DB, ids IDGenerator, clock Clock) TagRepository {
	return &tagRepo{db: db, ids: ids, clock: clock}
}

func scanTag(row rowScanner) (*models.Tag, error) {
	var tag models.Tag
	if err := row.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt); err != nil {
		return nil, err
	}
	return &tag, nil
}

// Create assigns id and timestamp and inserts the tag.
// A name already present in any letter case is a constraint error.
func (r *tagRepo) Create(ctx context.Context, tag *models.Tag) error {
	exists, err := r.NameExists(ctx, tag.Name)
	if err != nil {
		return err
	}
	if exists {
		return models.NewConstraintError("tag already exists: " + tag.Name)
	}

	tag.ID = r.ids.NewID()
	tag.CreatedAt = r.clock()

	query := `
		INSERT INTO tags (id, name, slug, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = r.db.ExecContext(ctx, query, tag.ID, tag.Name, tag.Slug, tag.CreatedAt)
	if isUniqueViolation(err) {
		return models.NewConstraintError("tag already exists: " + tag.Name)
	}
	return err
}

// GetByID retrieves a tag by ID, returning nil when absent
func (r *tagRepo) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	query := "SELECT " + tagColumns + " FROM tags WHERE id = $1"

	tag, err := scanTag(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// GetByIDs retrieves the tags whose IDs are listed, ordered by name
func (r *tagRepo) GetByIDs(ctx context.Context, ids []string) ([]*models.Tag, error) {
	if len(ids) == 0 {
		return []*models.Tag{}, nil
	}
	query := "SELECT " + tagColumns + " FROM tags WHERE id = ANY($1) ORDER BY name"
	return r.query(ctx, query, pq.Array(ids))
}

// List returns all tags ordered by name ascending
func (r *tagRepo) List(ctx context.Context) ([]*models.Tag, error) {
	return r.query(ctx, "SELECT "+tagColumns+" FROM tags ORDER BY name ASC")
}

func (r *tagRepo) query(ctx context.Context, query string, args ...any) ([]*models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*models.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// NameExists checks for a tag with the same name ignoring case
func (r *tagRepo) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM tags WHERE LOWER(name) = LOWER($1))", name,
	).Scan(&exists)
	return exists, err
}

// Delete removes a tag by ID. Articles keep their references to it.
func (r *tagRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tags WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.NewNotFoundError("tag", id)
	}
	return nil
}
